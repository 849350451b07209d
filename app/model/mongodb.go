package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	LogLevelInfo  = "info"
	LogLevelError = "error"
)

// ActivityLog merepresentasikan 1 dokumen log aktivitas di MongoDB (collection: activity_logs).
// Ditulis oleh middleware untuk setiap request, dan oleh resolver saat kegagalan ditelan.
type ActivityLog struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Level     string             `bson:"level" json:"level"`   // info / error
	Action    string             `bson:"action" json:"action"` // mis. "form_template.create", "form.resolve"
	Method    string             `bson:"method,omitempty" json:"method,omitempty"`
	Path      string             `bson:"path,omitempty" json:"path,omitempty"`
	Status    int                `bson:"status,omitempty" json:"status,omitempty"`
	UserID    string             `bson:"userId,omitempty" json:"user_id,omitempty"`
	LatencyMs int64              `bson:"latencyMs" json:"latency_ms"`
	Message   string             `bson:"message,omitempty" json:"message,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"created_at"`
}

// ActivityStat adalah hasil agregasi jumlah log per kunci (action / level).
type ActivityStat struct {
	Key   string `bson:"_id" json:"key"`
	Total int64  `bson:"total" json:"total"`
}

// ActivityStatistics adalah ringkasan log aktivitas.
type ActivityStatistics struct {
	ByAction []ActivityStat `json:"by_action"`
	ByLevel  []ActivityStat `json:"by_level"`
}
