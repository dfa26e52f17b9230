package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// resolveSortOrder 返回显式排序值，或当前最大值 + 1
func resolveSortOrder(gdb *gorm.DB, model any, explicit *int) (int, error) {
	if explicit != nil {
		return *explicit, nil
	}

	var maxOrder int
	if err := gdb.Model(model).Select("COALESCE(MAX(sort_order), -1)").Scan(&maxOrder).Error; err != nil {
		return 0, err
	}
	return maxOrder + 1, nil
}

// reorderRows 在事务内按 ids 顺序写入 sort_order，任一 id 不存在则整体回滚
func reorderRows(gdb *gorm.DB, model any, ids []uint, notFound error) error {
	if len(ids) == 0 {
		return newFieldError("ids", "must not be empty")
	}

	seen := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			return newFieldError("ids", "must not contain duplicates")
		}
		seen[id] = struct{}{}
	}

	err := gdb.Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(model).Where("id IN ?", ids).Count(&existing).Error; err != nil {
			return err
		}
		if existing != int64(len(ids)) {
			return notFound
		}

		for index, id := range ids {
			if err := tx.Model(model).Where("id = ?", id).Update("sort_order", index).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, notFound) {
			return err
		}
		return fmt.Errorf("reorder: %w", err)
	}
	return nil
}
