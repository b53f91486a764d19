// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package itemsrp

import (
	"context"
	"fmt"
	"time"

	"github.com/momeni/dispatchlog/pkg/adapter/db/sqlite"
	"gorm.io/gorm/clause"
)

type gItem struct {
	Name      string `gorm:"primaryKey"`
	Value     []byte `gorm:"not null"`
	UpdatedAt time.Time
}

func (gi *gItem) TableName() string {
	return "storage_items"
}

// Migrate creates the storage items table if it does not exist.
func Migrate[Q sqlite.Queryer](ctx context.Context, q Q) error {
	if err := q.GORM(ctx).AutoMigrate(&gItem{}); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}

// Get returns the value of the key item and whether it exists.
func Get[Q sqlite.Queryer](
	ctx context.Context, q Q, key string,
) ([]byte, bool, error) {
	var gi []gItem
	err := q.GORM(ctx).Where("name=?", key).Limit(1).Find(&gi).Error
	if err != nil {
		return nil, false, fmt.Errorf("query: %w", err)
	}
	if len(gi) == 0 {
		return nil, false, nil
	}
	v := gi[0].Value
	if v == nil {
		v = []byte{}
	}
	return v, true, nil
}

// Set inserts the key item or replaces its value.
func Set[Q sqlite.Queryer](
	ctx context.Context, q Q, key string, value []byte,
) error {
	if value == nil {
		value = []byte{}
	}
	err := q.GORM(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&gItem{
		Name:      key,
		Value:     value,
		UpdatedAt: time.Now(),
	}).Error
	if err != nil {
		return fmt.Errorf("upsert: %w", err)
	}
	return nil
}

// Remove deletes the key item. A missing item is not an error.
func Remove[Q sqlite.Queryer](ctx context.Context, q Q, key string) error {
	err := q.GORM(ctx).Where("name=?", key).Delete(&gItem{}).Error
	if err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	return nil
}
