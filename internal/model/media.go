package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Media 对象存储中一个 blob 的元数据记录。(bucket, key) 唯一。
type Media struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OriginalName string             `bson:"original_name" json:"originalName"`
	Key          string             `bson:"key" json:"key"`
	Bucket       string             `bson:"bucket" json:"bucket"`
	URL          string             `bson:"url" json:"url"`
	MimeType     string             `bson:"mime_type" json:"mimeType"`
	Size         int64              `bson:"size" json:"size"`
	Alt          string             `bson:"alt,omitempty" json:"alt,omitempty"`
	Caption      string             `bson:"caption,omitempty" json:"caption,omitempty"`
	CreatedAt    time.Time          `bson:"created_at" json:"createdAt"`
}
