package models

import "time"

// Order не меняется после создания.
//
// UserEmail хранит email владельца по значению, а не ссылкой на User.
// Цены в минимальных единицах валюты (копейки).
type Order struct {
	ID          string    `gorm:"primaryKey;size:36" bson:"_id" json:"id"`
	UserEmail   string    `gorm:"index:idx_orders_owner_time,priority:1;size:255;not null" bson:"userEmail" json:"userEmail"`
	ProductName string    `gorm:"size:255;not null" bson:"productName" json:"productName"`
	Quantity    int       `gorm:"not null" bson:"quantity" json:"quantity"`
	TotalPrice  int64     `gorm:"not null" bson:"totalPrice" json:"totalPrice"`
	Timestamp   time.Time `gorm:"index:idx_orders_owner_time,priority:2;not null" bson:"timestamp" json:"timestamp"`
}
