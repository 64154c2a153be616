package repository

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ListQuery 列表查询的分页与排序参数
type ListQuery struct {
	Page      int
	Limit     int
	SortBy    string
	SortOrder string // asc | desc
}

// FindOptions 构造分页排序的 Find 选项
func (q ListQuery) FindOptions(defaultSort string) *options.FindOptions {
	page := q.Page
	if page <= 0 {
		page = 1
	}
	limit := q.Limit
	if limit <= 0 {
		limit = 10
	}

	sortBy := q.SortBy
	if sortBy == "" {
		sortBy = defaultSort
	}
	order := -1
	if q.SortOrder == "asc" {
		order = 1
	}

	return options.Find().
		SetSort(bson.D{{Key: sortBy, Value: order}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))
}

// RegexSearch 大小写不敏感的模糊匹配条件
func RegexSearch(field, keyword string) bson.M {
	return bson.M{field: bson.M{"$regex": keyword, "$options": "i"}}
}
