package todo

import (
	"time"

	internalage "github.com/amonks/solidtodo/internal/age"
)

// AgeData computes how long ago the item was created.
func AgeData(item *Item, now time.Time) (time.Duration, bool) {
	return internalage.AgeData(item.createdAt, now)
}

// UpdatedData computes how long ago the item was last modified.
func UpdatedData(item *Item, now time.Time) (time.Duration, bool) {
	return internalage.AgeData(item.lastModified, now)
}

// DueData computes the time remaining until the item is due. The duration
// is negative when the due date has passed.
func DueData(item *Item, now time.Time) (time.Duration, bool) {
	if item.dueDate == nil {
		return 0, false
	}
	return item.dueDate.Sub(now), true
}
