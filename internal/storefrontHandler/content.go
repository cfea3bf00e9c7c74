package handler

import (
	"context"
	"net/http"
	"time"

	config "baul-moda/config/database"

	"github.com/labstack/echo/v4"
)

type Tip struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	ImageURL  string    `json:"image_url"`
	CreatedAt time.Time `json:"created_at"`
}

type Course struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	PriceARS    float64   `json:"price_ars"`
	SignupURL   string    `json:"signup_url"`
	CreatedAt   time.Time `json:"created_at"`
}

type Project struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
}

// ListTips handles GET /tips
func ListTips(c echo.Context) error {
	rows, err := config.Pool.Query(context.Background(),
		"SELECT id, title, body, image_url, created_at FROM tips ORDER BY created_at DESC")
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Failed to fetch tips"})
	}
	defer rows.Close()

	var tips []Tip
	for rows.Next() {
		var t Tip
		if err := rows.Scan(&t.ID, &t.Title, &t.Body, &t.ImageURL, &t.CreatedAt); err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Failed to parse tips"})
		}
		tips = append(tips, t)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Tips fetched successfully",
		"tips":    tips,
	})
}

// ListCourses handles GET /courses
func ListCourses(c echo.Context) error {
	rows, err := config.Pool.Query(context.Background(),
		"SELECT id, title, description, price_ars, signup_url, created_at FROM courses ORDER BY created_at DESC")
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Failed to fetch courses"})
	}
	defer rows.Close()

	var courses []Course
	for rows.Next() {
		var course Course
		if err := rows.Scan(&course.ID, &course.Title, &course.Description, &course.PriceARS, &course.SignupURL, &course.CreatedAt); err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Failed to parse courses"})
		}
		courses = append(courses, course)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Courses fetched successfully",
		"courses": courses,
	})
}

// ListProjects handles GET /projects
func ListProjects(c echo.Context) error {
	rows, err := config.Pool.Query(context.Background(),
		"SELECT id, title, description, image_url, created_at FROM projects ORDER BY created_at DESC")
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Failed to fetch projects"})
	}
	defer rows.Close()

	var projects []Project
	for rows.Next() {
		var p Project
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.ImageURL, &p.CreatedAt); err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Failed to parse projects"})
		}
		projects = append(projects, p)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":  "Projects fetched successfully",
		"projects": projects,
	})
}
