package model

import "time"

// creationTimes fills zero creation and update times so that no document is
// inserted without them. A missing update time takes the creation time.
func creationTimes(created, updated time.Time) (time.Time, time.Time) {
	if created.IsZero() {
		created = time.Now().UTC()
	}

	if updated.IsZero() {
		updated = created
	}

	return created, updated
}

// UpdateTime returns t, or the current time when t is zero.
func UpdateTime(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now().UTC()
	}

	return t
}
