package models

import "time"

type TimeModel struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (m *TimeModel) SetCreatedAtUpdatedAt(createdAt, updatedAt time.Time) {
	m.CreatedAt = createdAt
	m.UpdatedAt = updatedAt
}

func (m *TimeModel) SetUpdatedAt(updatedAt time.Time) {
	m.UpdatedAt = updatedAt
}
