package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/coachup/coaching-api/internal/metrics"
	"github.com/coachup/coaching-api/internal/queue"
	"github.com/coachup/coaching-api/internal/repository"
	queue_publisher "github.com/coachup/coaching-api/internal/service"
)

// CourseHandler serves the public course catalogue and the booking and
// cancellation operations.
type CourseHandler struct {
	Courses  *repository.CourseRepo
	Bookings *repository.BookingRepo
	Users    *repository.UserRepo
}

func NewCourseHandler(cr *repository.CourseRepo, b *repository.BookingRepo, u *repository.UserRepo) *CourseHandler {
	return &CourseHandler{Courses: cr, Bookings: b, Users: u}
}

// List returns every course with coach and skill names.
func (h *CourseHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	courses, err := h.Courses.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"courses": courses})
}

// Book creates a booking for the caller. The admission checks run inside
// one repository transaction; this handler only maps the outcome to a
// status code and emits the metric and event.
func (h *CourseHandler) Book(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	courseID, ok := pathID(c, "courseId")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid course id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	b, err := h.Bookings.Book(ctx, uid, courseID)
	if err != nil {
		switch err {
		case repository.ErrCourseNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "course not found"})
		case repository.ErrAlreadyBooked:
			metrics.BookingsRejected.WithLabelValues("already_booked").Inc()
			return c.JSON(http.StatusConflict, echo.Map{"error": "course already booked"})
		case repository.ErrInsufficientCredits:
			metrics.BookingsRejected.WithLabelValues("insufficient_credits").Inc()
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "insufficient credits"})
		case repository.ErrCourseFull:
			metrics.BookingsRejected.WithLabelValues("course_full").Inc()
			return c.JSON(http.StatusConflict, echo.Map{"error": "course is full"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "booking failed"})
	}

	metrics.BookingsCreated.Inc()
	h.publishCreated(b.ID, uid, courseID, b.CreatedAt)

	return c.JSON(http.StatusCreated, echo.Map{
		"booking_id": b.ID,
		"course_id":  b.CourseID,
		"status":     b.Status,
		"booked_at":  b.CreatedAt,
	})
}

// Cancel soft-cancels the caller's active booking, releasing the credit
// and the capacity slot.
func (h *CourseHandler) Cancel(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	courseID, ok := pathID(c, "courseId")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid course id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	bookingID, err := h.Bookings.Cancel(ctx, uid, courseID)
	if err != nil {
		if err == repository.ErrBookingNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "no active booking for this course"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "cancel failed"})
	}

	metrics.BookingsCancelled.Inc()
	go func(ev queue.BookingCancelledEvent) {
		pubCtx, pubCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer pubCancel()
		_ = queue_publisher.PublishBookingCancelled(pubCtx, ev)
	}(queue.BookingCancelledEvent{
		BookingID:   bookingID,
		UserID:      uid,
		CourseID:    courseID,
		CancelledAt: time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusOK, echo.Map{"message": "booking cancelled"})
}

// publishCreated enriches and publishes the created event off the request
// path; failures never affect the response.
func (h *CourseHandler) publishCreated(bookingID, userID, courseID uint64, bookedAt time.Time) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		ev := queue.BookingCreatedEvent{
			BookingID: bookingID,
			UserID:    userID,
			CourseID:  courseID,
			BookedAt:  bookedAt.UTC().Format(time.RFC3339),
		}
		if course, err := h.Courses.GetByID(ctx, courseID); err == nil {
			ev.CourseName = course.Name
			ev.StartAt = course.StartAt.UTC().Format(time.RFC3339)
			ev.EndAt = course.EndAt.UTC().Format(time.RFC3339)
			if coach, err := h.Users.GetByID(ctx, course.UserID); err == nil {
				ev.CoachName = coach.Name
			}
		}
		_ = queue_publisher.PublishBookingCreated(ctx, ev)
	}()
}
