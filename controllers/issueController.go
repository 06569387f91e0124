package controllers

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"cityhelp-be/errs"
	"cityhelp-be/logger"
	"cityhelp-be/middlewares"
	"cityhelp-be/services"
	"cityhelp-be/storage"
)

type IssueController struct {
	issues         *services.IssueService
	maxUploadBytes int64
}

func NewIssueController(issues *services.IssueService, maxUploadBytes int64) *IssueController {
	if maxUploadBytes <= 0 {
		maxUploadBytes = storage.DefaultMaxBytes
	}
	return &IssueController{issues: issues, maxUploadBytes: maxUploadBytes}
}

func objectIDParam(c *gin.Context, name, label string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + label + " ID"})
		return primitive.NilObjectID, false
	}
	return id, true
}

func listFilter(c *gin.Context) services.ListFilter {
	return services.ListFilter{
		Status:   c.Query("status"),
		Category: c.Query("category"),
		Search:   c.Query("search"),
		Sort:     c.Query("sort"),
	}
}

func pageParams(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	return page, limit
}

// CreateIssue handles a new report, sent as multipart form (with an optional
// image) or as JSON.
func (ic *IssueController) CreateIssue(c *gin.Context) {
	input, err := ic.reportInput(c)
	if err != nil {
		middlewares.AbortWithError(c, err)
		return
	}

	user := middlewares.CurrentUser(c)
	result, err := ic.issues.SubmitReport(c.Request.Context(), input, user.ID)
	if err != nil {
		middlewares.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":       "Issue reported successfully",
		"issue":         result.Issue,
		"pointsAwarded": result.PointsAwarded,
	})
}

func (ic *IssueController) reportInput(c *gin.Context) (services.ReportInput, error) {
	var input services.ReportInput

	if !strings.HasPrefix(c.ContentType(), "multipart/") {
		if err := c.ShouldBindJSON(&input); err != nil {
			return input, errs.Validation("Invalid request body")
		}
		return input, nil
	}

	if err := ic.parseMultipart(c); err != nil {
		return input, err
	}
	input.Title = c.PostForm("title")
	input.Description = c.PostForm("description")
	input.Location = c.PostForm("location")
	for _, tag := range strings.Split(c.PostForm("tags"), ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			input.Tags = append(input.Tags, tag)
		}
	}

	var err error
	if input.Latitude, err = formFloat(c, "latitude"); err != nil {
		return input, err
	}
	if input.Longitude, err = formFloat(c, "longitude"); err != nil {
		return input, err
	}

	fh, err := c.FormFile("image")
	switch {
	case errors.Is(err, http.ErrMissingFile):
	case err != nil:
		return input, errs.Validation("Could not read uploaded image")
	default:
		if input.Image, err = storage.ReadUpload(fh, ic.maxUploadBytes); err != nil {
			return input, err
		}
	}
	return input, nil
}

// multipartOverhead leaves room for the text fields next to the image.
const multipartOverhead = 1 << 20

// parseMultipart caps the body and parses it up front so an oversized upload
// is reported as such instead of surfacing later as a missing field.
func (ic *IssueController) parseMultipart(c *gin.Context) error {
	limit := ic.maxUploadBytes + multipartOverhead
	if c.Request.ContentLength > limit {
		return storage.TooLarge(ic.maxUploadBytes)
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
	if err := c.Request.ParseMultipartForm(ic.maxUploadBytes); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return storage.TooLarge(ic.maxUploadBytes)
		}
		return errs.Validation("Invalid form data")
	}
	return nil
}

func formFloat(c *gin.Context, field string) (*float64, error) {
	raw := strings.TrimSpace(c.PostForm(field))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, errs.Validation(field + " must be a number")
	}
	return &v, nil
}

// GetAllIssues handles retrieving all issues with filtering, pagination, and vote counts
func (ic *IssueController) GetAllIssues(c *gin.Context) {
	page, limit := pageParams(c)
	result, err := ic.issues.ListIssues(c.Request.Context(), listFilter(c), page, limit, middlewares.CurrentUser(c))
	if err != nil {
		middlewares.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetAllIssuesAdmin is GetAllIssues for the admin console.
func (ic *IssueController) GetAllIssuesAdmin(c *gin.Context) {
	page, limit := pageParams(c)
	result, err := ic.issues.AdminListIssues(c.Request.Context(), middlewares.CurrentUser(c), listFilter(c), page, limit)
	if err != nil {
		middlewares.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetIssuesByUser retrieves all issues created by the caller
func (ic *IssueController) GetIssuesByUser(c *gin.Context) {
	issues, err := ic.issues.ListIssuesForUser(c.Request.Context(), middlewares.CurrentUser(c), listFilter(c))
	if err != nil {
		middlewares.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, issues)
}

// GetIssue retrieves an issue by its ID with vote information
func (ic *IssueController) GetIssue(c *gin.Context) {
	id, ok := objectIDParam(c, "id", "issue")
	if !ok {
		return
	}
	issue, err := ic.issues.GetIssue(c.Request.Context(), id, middlewares.CurrentUser(c))
	if err != nil {
		middlewares.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, issue)
}

// UpdateIssueStatus sets the status of an issue. Admin only.
func (ic *IssueController) UpdateIssueStatus(c *gin.Context) {
	id, ok := objectIDParam(c, "id", "issue")
	if !ok {
		return
	}
	var input struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	issue, err := ic.issues.UpdateStatus(c.Request.Context(), id, input.Status, middlewares.CurrentUser(c))
	if err != nil {
		middlewares.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Issue status updated successfully", "issue": issue})
}

// UpdateIssueNotes replaces the admin notes of an issue.
func (ic *IssueController) UpdateIssueNotes(c *gin.Context) {
	id, ok := objectIDParam(c, "id", "issue")
	if !ok {
		return
	}
	var input struct {
		Notes string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	issue, err := ic.issues.UpdateNotes(c.Request.Context(), id, input.Notes, middlewares.CurrentUser(c))
	if err != nil {
		middlewares.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Issue notes updated successfully", "issue": issue})
}

// AssignIssue hands an issue to an admin.
func (ic *IssueController) AssignIssue(c *gin.Context) {
	id, ok := objectIDParam(c, "id", "issue")
	if !ok {
		return
	}
	var input struct {
		AdminID string `json:"adminId"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	assignee, err := primitive.ObjectIDFromHex(input.AdminID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid admin ID"})
		return
	}

	issue, err := ic.issues.AssignIssue(c.Request.Context(), id, assignee, middlewares.CurrentUser(c))
	if err != nil {
		middlewares.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Issue assigned successfully", "issue": issue})
}

// DeleteIssue deletes an issue. Admins may delete any issue, citizens their own.
func (ic *IssueController) DeleteIssue(c *gin.Context) {
	id, ok := objectIDParam(c, "id", "issue")
	if !ok {
		return
	}
	if err := ic.issues.DeleteIssue(c.Request.Context(), id, middlewares.CurrentUser(c)); err != nil {
		middlewares.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Issue deleted successfully"})
}

// VoteIssue toggles the caller's vote on an issue.
func (ic *IssueController) VoteIssue(c *gin.Context) {
	id, ok := objectIDParam(c, "id", "issue")
	if !ok {
		return
	}
	voted, votes, err := ic.issues.ToggleVote(c.Request.Context(), id, middlewares.CurrentUser(c))
	if err != nil {
		middlewares.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"voted": voted, "votes": votes})
}

// GetRecentIssues returns map markers for the newest located issues.
func (ic *IssueController) GetRecentIssues(c *gin.Context) {
	markers, err := ic.issues.RecentIssues(c.Request.Context())
	if err != nil {
		middlewares.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, markers)
}

// GetIssueImage streams the image attached to an issue.
func (ic *IssueController) GetIssueImage(c *gin.Context) {
	id, ok := objectIDParam(c, "id", "issue")
	if !ok {
		return
	}
	rc, contentType, err := ic.issues.OpenImage(c.Request.Context(), id)
	if err != nil {
		middlewares.AbortWithError(c, err)
		return
	}
	defer rc.Close()

	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Content-Type", contentType)
	c.Header("Cache-Control", "public, max-age=86400")
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, rc); err != nil {
		logger.FromContext(c.Request.Context()).Warn().Err(err).Str("issue_id", id.Hex()).Msg("image stream interrupted")
	}
}

// ClassifyImage classifies an uploaded image without creating an issue.
func (ic *IssueController) ClassifyImage(c *gin.Context) {
	if err := ic.parseMultipart(c); err != nil {
		middlewares.AbortWithError(c, err)
		return
	}
	fh, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No image uploaded"})
		return
	}
	upload, err := storage.ReadUpload(fh, ic.maxUploadBytes)
	if err != nil {
		middlewares.AbortWithError(c, err)
		return
	}

	category, department, err := ic.issues.ClassifyImage(c.Request.Context(), upload)
	if err != nil {
		middlewares.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"category": category, "department": department})
}
