// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingCreatedEvent is published when a course booking is successfully
// created. It carries enough information for downstream consumers to log,
// notify, or trigger analytics without querying the primary database.
type BookingCreatedEvent struct {
	BookingID  uint64 `json:"booking_id"`
	UserID     uint64 `json:"user_id"`
	CourseID   uint64 `json:"course_id"`
	CourseName string `json:"course_name"`
	CoachName  string `json:"coach_name"`
	StartAt    string `json:"start_at"`
	EndAt      string `json:"end_at"`
	BookedAt   string `json:"booked_at"`
}

// BookingCancelledEvent is published when an active booking is cancelled
// and its credit released back to the participant.
type BookingCancelledEvent struct {
	BookingID   uint64 `json:"booking_id"`
	UserID      uint64 `json:"user_id"`
	CourseID    uint64 `json:"course_id"`
	CancelledAt string `json:"cancelled_at"`
}

// CreditPurchasedEvent is published when a user buys a credit package.
// Amount and price are the values copied onto the purchase row, so the
// event stays accurate even if the package changes later.
type CreditPurchasedEvent struct {
	PurchaseID  uint64 `json:"purchase_id"`
	UserID      uint64 `json:"user_id"`
	PackageID   uint64 `json:"credit_package_id"`
	PackageName string `json:"package_name"`
	Credits     uint32 `json:"credits"`
	PricePaid   uint32 `json:"price_paid"`
	PurchasedAt string `json:"purchased_at"`
}
