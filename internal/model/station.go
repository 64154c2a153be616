package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// 电台状态
const (
	StationStatusActive   = "active"
	StationStatusInactive = "inactive"
)

// 地区分组
const (
	LocationLuzon    = "luzon"
	LocationVisayas  = "visayas"
	LocationMindanao = "mindanao"
)

// Station 电台
type Station struct {
	ID            primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name          string              `bson:"name" json:"name"`
	Slug          string              `bson:"slug" json:"slug"` // 大小写不敏感唯一
	Frequency     string              `bson:"frequency" json:"frequency"`
	LocationGroup string              `bson:"location_group" json:"locationGroup"`
	Status        string              `bson:"status" json:"status"`
	LogoMediaID   *primitive.ObjectID `bson:"logo_media_id,omitempty" json:"logoMediaId,omitempty"`
	CreatedAt     time.Time           `bson:"created_at" json:"createdAt"`
	UpdatedAt     time.Time           `bson:"updated_at" json:"updatedAt"`
}
