package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Program 周播节目。days 为星期集合 (0=周日 … 6=周六)，
// start_time/end_time 为电台本地时间 HH:MM:SS；start > end 表示跨午夜节目。
type Program struct {
	ID              primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	StationID       primitive.ObjectID  `bson:"station_id" json:"stationId"`
	Name            string              `bson:"name" json:"name"`
	Slug            string              `bson:"slug" json:"slug"`
	Description     string              `bson:"description,omitempty" json:"description,omitempty"`
	ImageMediaID    *primitive.ObjectID `bson:"image_media_id,omitempty" json:"imageMediaId,omitempty"`
	Days            []int               `bson:"days" json:"days"`
	StartTime       string              `bson:"start_time" json:"startTime"`
	EndTime         string              `bson:"end_time" json:"endTime"`
	DurationMinutes *int                `bson:"duration_minutes,omitempty" json:"durationMinutes,omitempty"` // 仅作展示，不参与校验
	IsActive        bool                `bson:"is_active" json:"isActive"`
	CreatedAt       time.Time           `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time           `bson:"updated_at" json:"updatedAt"`
}
