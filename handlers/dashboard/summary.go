package dashboard

import (
	"fmt"
	"math"

	"github.com/gofiber/fiber/v2"
	"github.com/skillport/trainer-api/database"
	"github.com/skillport/trainer-api/model"
	"github.com/skillport/trainer-api/utils/middleware"
	"github.com/skillport/trainer-api/utils/response"
	"gorm.io/gorm"
)

// DashboardHandler computes the trainer overview. It owns no state: every
// call folds courses, enrollments, grades and feedback from scratch, which
// stays cheap because the data is bounded by a single trainer's volume.
type DashboardHandler struct {
	db *gorm.DB
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(db *gorm.DB) *DashboardHandler {
	return &DashboardHandler{db: db}
}

// Cards is the headline counter block
type Cards struct {
	MyCourses          int     `json:"my_courses"`
	TotalEnrolled      int     `json:"total_enrolled"`
	PendingSubmissions int     `json:"pending_submissions"`
	AvgRating          float64 `json:"avg_rating"`
}

// Today is the small same-day counter block
type Today struct {
	QuizzesScheduled   int64 `json:"quizzes_scheduled"`
	PendingSubmissions int   `json:"pending_submissions"`
}

// PendingItem is one ungraded enrollment surfaced on the dashboard
type PendingItem struct {
	StudentName string `json:"student_name"`
	CourseTitle string `json:"course_title"`
	Task        string `json:"task"`
	Status      string `json:"status"`
}

// FeedbackItem is one recent feedback entry surfaced on the dashboard
type FeedbackItem struct {
	StudentName string `json:"student_name"`
	CourseTitle string `json:"course_title"`
	Rating      int    `json:"rating"`
	Comment     string `json:"comment"`
}

// Summary is the aggregated trainer overview
type Summary struct {
	Cards          Cards          `json:"cards"`
	Today          Today          `json:"today"`
	RecentPending  []PendingItem  `json:"recent_pending"`
	LatestFeedback []FeedbackItem `json:"latest_feedback"`
}

// GetSummary handles GET /api/trainer/dashboard/summary
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	trainerID, ok := middleware.PrincipalID(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	var courses []model.Course
	if err := h.db.Scopes(database.OwnedBy(trainerID)).
		Order("created_at DESC").
		Find(&courses).Error; err != nil {
		return response.InternalServerError(c, err.Error())
	}

	courseTitles := make(map[uint]string, len(courses))
	courseIDs := make([]uint, 0, len(courses))
	for _, crs := range courses {
		courseTitles[crs.ID] = crs.Title
		courseIDs = append(courseIDs, crs.ID)
	}

	var enrollments []model.Enrollment
	if len(courseIDs) > 0 {
		if err := h.db.Scopes(database.OwnedBy(trainerID)).
			Where("course_id IN ?", courseIDs).
			Preload("Student").
			Order("created_at DESC").
			Find(&enrollments).Error; err != nil {
			return response.InternalServerError(c, err.Error())
		}
	}

	var grades []model.Grade
	if err := h.db.Scopes(database.OwnedBy(trainerID)).
		Find(&grades).Error; err != nil {
		return response.InternalServerError(c, err.Error())
	}

	// Pending submissions is a proxy: enrollments with no grade yet. A real
	// submission-tracking entity would replace this.
	graded := make(map[string]struct{}, len(grades))
	for _, g := range grades {
		graded[fmt.Sprintf("%d_%d", g.StudentID, g.CourseID)] = struct{}{}
	}

	var pending []model.Enrollment
	for _, e := range enrollments {
		if _, found := graded[fmt.Sprintf("%d_%d", e.StudentID, e.CourseID)]; !found {
			pending = append(pending, e)
		}
	}

	var latest []model.Feedback
	if err := h.db.Scopes(database.OwnedBy(trainerID)).
		Preload("Student").
		Order("created_at DESC").
		Limit(5).
		Find(&latest).Error; err != nil {
		return response.InternalServerError(c, err.Error())
	}

	var allFeedback []model.Feedback
	if err := h.db.Scopes(database.OwnedBy(trainerID)).
		Find(&allFeedback).Error; err != nil {
		return response.InternalServerError(c, err.Error())
	}

	avgRating := 0.0
	if len(allFeedback) > 0 {
		sum := 0
		for _, f := range allFeedback {
			sum += f.Rating
		}
		avgRating = math.Round(float64(sum)/float64(len(allFeedback))*10) / 10
	}

	var quizCount int64
	if err := h.db.Model(&model.Quiz{}).
		Scopes(database.OwnedBy(trainerID)).
		Count(&quizCount).Error; err != nil {
		return response.InternalServerError(c, err.Error())
	}

	recentPending := make([]PendingItem, 0, 5)
	for i, e := range pending {
		if i == 5 {
			break
		}
		recentPending = append(recentPending, PendingItem{
			StudentName: e.Student.Name,
			CourseTitle: courseTitles[e.CourseID],
			Task:        "Grade Pending",
			Status:      "Pending",
		})
	}

	latestFeedback := make([]FeedbackItem, 0, len(latest))
	for _, f := range latest {
		latestFeedback = append(latestFeedback, FeedbackItem{
			StudentName: f.Student.Name,
			CourseTitle: courseTitles[f.CourseID],
			Rating:      f.Rating,
			Comment:     f.Comment,
		})
	}

	return response.OK(c, Summary{
		Cards: Cards{
			MyCourses:          len(courses),
			TotalEnrolled:      len(enrollments),
			PendingSubmissions: len(pending),
			AvgRating:          avgRating,
		},
		Today: Today{
			QuizzesScheduled:   quizCount,
			PendingSubmissions: len(pending),
		},
		RecentPending:  recentPending,
		LatestFeedback: latestFeedback,
	})
}
