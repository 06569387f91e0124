package services

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"cityhelp-be/authz"
	"cityhelp-be/classifier"
	"cityhelp-be/errs"
	"cityhelp-be/logger"
	"cityhelp-be/metrics"
	"cityhelp-be/models"
	"cityhelp-be/storage"
)

// PointsPerReport is awarded to the reporter for every persisted issue.
const PointsPerReport = 10

const (
	defaultPageSize = 10
	maxPageSize     = 100
	recentLimit     = 19
)

// ReportInput is a new issue report as received from a citizen.
type ReportInput struct {
	Title       string          `json:"title" validate:"required,max=200"`
	Description string          `json:"description" validate:"required,max=1000"`
	Location    string          `json:"location" validate:"max=200"`
	Latitude    *float64        `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude   *float64        `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	Tags        []string        `json:"tags" validate:"max=10,dive,max=50"`
	Image       *storage.Upload `json:"-"`
}

// ReportResult is the created issue plus the points it earned.
type ReportResult struct {
	*models.Issue
	PointsAwarded int `json:"pointsAwarded"`
}

// ListFilter is the caller-facing filter; values are normalized before use.
type ListFilter struct {
	Status   string
	Category string
	Search   string
	Sort     string
}

type IssueService struct {
	issues     IssueStore
	users      UserStore
	votes      VoteStore
	classifier Classifier
	images     ImageStore
	authz      Authorizer
	cache      StatsCache
	now        func() time.Time
}

func NewIssueService(issues IssueStore, users UserStore, votes VoteStore, cls Classifier, images ImageStore, az Authorizer, cache StatsCache) *IssueService {
	if cache == nil {
		cache = nopStatsCache{}
	}
	return &IssueService{
		issues:     issues,
		users:      users,
		votes:      votes,
		classifier: cls,
		images:     images,
		authz:      az,
		cache:      cache,
		now:        time.Now,
	}
}

// SubmitReport classifies, persists and rewards a new report. Points are
// awarded only after the issue write succeeds.
func (s *IssueService) SubmitReport(ctx context.Context, in ReportInput, reporter primitive.ObjectID) (*ReportResult, error) {
	log := logger.FromContext(ctx)

	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Location = strings.TrimSpace(in.Location)
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	if (in.Latitude == nil) != (in.Longitude == nil) {
		return nil, errs.Validation("latitude and longitude must be provided together")
	}
	if in.Location == "" && in.Latitude == nil {
		return nil, errs.Validation("location is required")
	}

	var category string
	if in.Image != nil {
		var err error
		category, err = s.classifier.ClassifyImage(ctx, in.Image.Data, in.Image.Filename)
		if err != nil {
			return nil, err
		}
	} else {
		category = s.classifier.ClassifyText(ctx, in.Description)
	}
	department := classifier.ResolveDepartment(category)

	now := s.now()
	issue := &models.Issue{
		ID:          primitive.NewObjectID(),
		Title:       in.Title,
		Description: in.Description,
		Location:    in.Location,
		Category:    category,
		Department:  department,
		Status:      models.Pending,
		Priority:    models.Medium,
		ReportedBy:  reporter,
		Tags:        in.Tags,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if in.Latitude != nil && in.Longitude != nil {
		issue.Geo = models.NewGeoPoint(*in.Latitude, *in.Longitude)
	}

	if in.Image != nil {
		path, err := s.images.Save(ctx, in.Image)
		if err != nil {
			return nil, err
		}
		issue.ImagePath = path
		issue.ImageContentType = in.Image.ContentType
	}

	if err := s.issues.Insert(ctx, issue); err != nil {
		if issue.ImagePath != "" {
			if rmErr := s.images.Remove(issue.ImagePath); rmErr != nil {
				log.Warn().Err(rmErr).Str("path", issue.ImagePath).Msg("failed to remove orphaned image")
			}
		}
		return nil, asPersistence("create issue", err)
	}
	metrics.ReportsSubmitted.Inc()
	s.cache.Invalidate(ctx)

	awarded := PointsPerReport
	if err := s.users.IncrementPoints(ctx, reporter, PointsPerReport); err != nil {
		log.Error().Err(err).Str("user_id", reporter.Hex()).Str("issue_id", issue.ID.Hex()).
			Msg("issue created but awarding points failed")
		awarded = 0
	}

	log.Info().Str("issue_id", issue.ID.Hex()).Str("category", category).Str("department", department).
		Msg("issue reported")
	return &ReportResult{Issue: issue, PointsAwarded: awarded}, nil
}

// ListIssues returns one page of issues, newest first.
func (s *IssueService) ListIssues(ctx context.Context, f ListFilter, page, pageSize int, viewer *models.User) (*models.IssuePage, error) {
	filter, err := normalizeFilter(f)
	if err != nil {
		return nil, err
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	issues, total, err := s.issues.List(ctx, filter, int64((page-1)*pageSize), int64(pageSize))
	if err != nil {
		return nil, asPersistence("list issues", err)
	}
	views, err := s.decorate(ctx, issues, viewer)
	if err != nil {
		return nil, err
	}

	return &models.IssuePage{
		Issues:      views,
		Total:       total,
		TotalPages:  int((total + int64(pageSize) - 1) / int64(pageSize)),
		CurrentPage: page,
	}, nil
}

// AdminListIssues is ListIssues behind the list_all capability.
func (s *IssueService) AdminListIssues(ctx context.Context, actor *models.User, f ListFilter, page, pageSize int) (*models.IssuePage, error) {
	if err := s.authz.Decide(actor, authz.ListAllIssues, nil).Err(); err != nil {
		return nil, err
	}
	return s.ListIssues(ctx, f, page, pageSize, actor)
}

// ListIssuesForUser returns every issue reported by user, newest first.
func (s *IssueService) ListIssuesForUser(ctx context.Context, user *models.User, f ListFilter) ([]models.IssueView, error) {
	filter, err := normalizeFilter(f)
	if err != nil {
		return nil, err
	}
	issues, err := s.issues.ListByReporter(ctx, user.ID, filter)
	if err != nil {
		return nil, asPersistence("list user issues", err)
	}
	return s.decorate(ctx, issues, user)
}

// GetIssue returns a single issue with its vote tally for viewer.
func (s *IssueService) GetIssue(ctx context.Context, id primitive.ObjectID, viewer *models.User) (*models.IssueView, error) {
	issue, err := s.issues.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	views, err := s.decorate(ctx, []models.Issue{*issue}, viewer)
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// UpdateStatus moves an issue to a new status. Any status may follow any other.
func (s *IssueService) UpdateStatus(ctx context.Context, id primitive.ObjectID, rawStatus string, actor *models.User) (*models.Issue, error) {
	if err := s.authz.Decide(actor, authz.UpdateStatus, nil).Err(); err != nil {
		return nil, err
	}
	status, ok := models.ParseStatus(rawStatus)
	if !ok {
		return nil, errs.Validation("Invalid status")
	}

	issue, err := s.issues.SetStatus(ctx, id, status)
	if err != nil {
		return nil, asPersistence("update issue status", err)
	}
	s.cache.Invalidate(ctx)

	logger.FromContext(ctx).Info().Str("issue_id", id.Hex()).Str("status", string(status)).
		Str("actor_id", actor.ID.Hex()).Msg("issue status updated")
	return issue, nil
}

// UpdateNotes replaces the admin notes verbatim.
func (s *IssueService) UpdateNotes(ctx context.Context, id primitive.ObjectID, notes string, actor *models.User) (*models.Issue, error) {
	if err := s.authz.Decide(actor, authz.UpdateNotes, nil).Err(); err != nil {
		return nil, err
	}
	issue, err := s.issues.SetNotes(ctx, id, notes)
	if err != nil {
		return nil, asPersistence("update issue notes", err)
	}
	return issue, nil
}

// AssignIssue hands an issue to an admin.
func (s *IssueService) AssignIssue(ctx context.Context, id, assignee primitive.ObjectID, actor *models.User) (*models.Issue, error) {
	if err := s.authz.Decide(actor, authz.AssignIssue, nil).Err(); err != nil {
		return nil, err
	}

	target, err := s.users.FindByID(ctx, assignee)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, errs.Validation("Assignee does not exist")
		}
		return nil, asPersistence("load assignee", err)
	}
	if !target.IsAdmin() {
		return nil, errs.Validation("Issues can only be assigned to admins")
	}

	issue, err := s.issues.SetAssignee(ctx, id, assignee)
	if err != nil {
		return nil, asPersistence("assign issue", err)
	}
	return issue, nil
}

// DeleteIssue removes an issue, its votes and its image. Admins may delete
// any issue; citizens only their own.
func (s *IssueService) DeleteIssue(ctx context.Context, id primitive.ObjectID, actor *models.User) error {
	log := logger.FromContext(ctx)

	issue, err := s.issues.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authz.Decide(actor, authz.DeleteIssue, issue).Err(); err != nil {
		return err
	}

	if err := s.issues.Delete(ctx, id); err != nil {
		return asPersistence("delete issue", err)
	}
	s.cache.Invalidate(ctx)

	if err := s.votes.DeleteForIssue(ctx, id); err != nil {
		log.Warn().Err(err).Str("issue_id", id.Hex()).Msg("failed to delete votes of deleted issue")
	}
	if issue.ImagePath != "" {
		if err := s.images.Remove(issue.ImagePath); err != nil {
			log.Warn().Err(err).Str("path", issue.ImagePath).Msg("failed to remove image of deleted issue")
		}
	}

	log.Info().Str("issue_id", id.Hex()).Str("actor_id", actor.ID.Hex()).Msg("issue deleted")
	return nil
}

// ToggleVote adds the user's vote, or removes it if already cast.
func (s *IssueService) ToggleVote(ctx context.Context, id primitive.ObjectID, user *models.User) (bool, int64, error) {
	if _, err := s.issues.FindByID(ctx, id); err != nil {
		return false, 0, err
	}

	voted, err := s.votes.Exists(ctx, id, user.ID)
	if err != nil {
		return false, 0, asPersistence("check existing vote", err)
	}

	if voted {
		if _, err := s.votes.Delete(ctx, id, user.ID); err != nil {
			return false, 0, asPersistence("remove vote", err)
		}
	} else {
		vote := &models.Vote{ID: primitive.NewObjectID(), Issue: id, User: user.ID, CreatedAt: s.now()}
		if err := s.votes.Insert(ctx, vote); err != nil && !errors.Is(err, errs.ErrConflict) {
			return false, 0, asPersistence("cast vote", err)
		}
	}

	count, err := s.votes.CountForIssue(ctx, id)
	if err != nil {
		return false, 0, asPersistence("count votes", err)
	}
	return !voted, count, nil
}

// RecentIssues returns the latest issues that carry coordinates.
func (s *IssueService) RecentIssues(ctx context.Context) ([]models.MapMarker, error) {
	markers, err := s.issues.RecentWithLocation(ctx, recentLimit)
	if err != nil {
		return nil, asPersistence("list recent issues", err)
	}
	out := make([]models.MapMarker, 0, len(markers))
	for _, m := range markers {
		if m.Geo == nil || len(m.Geo.Coordinates) != 2 {
			continue
		}
		m.Latitude = m.Geo.Latitude()
		m.Longitude = m.Geo.Longitude()
		out = append(out, m)
	}
	return out, nil
}

// OpenImage returns the attached image, reading either the stored path or
// the embedded binary form.
func (s *IssueService) OpenImage(ctx context.Context, id primitive.ObjectID) (io.ReadCloser, string, error) {
	issue, err := s.issues.FindByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	switch {
	case issue.ImagePath != "":
		rc, err := s.images.Open(issue.ImagePath)
		if err != nil {
			return nil, "", err
		}
		return rc, issue.ImageContentType, nil
	case issue.ImageData != nil && len(issue.ImageData.Data) > 0:
		return storage.BytesReader(issue.ImageData.Data), issue.ImageData.ContentType, nil
	default:
		return nil, "", errs.NotFound("Issue has no image")
	}
}

// ClassifyImage runs image classification without creating an issue.
func (s *IssueService) ClassifyImage(ctx context.Context, upload *storage.Upload) (string, string, error) {
	category, err := s.classifier.ClassifyImage(ctx, upload.Data, upload.Filename)
	if err != nil {
		return "", "", err
	}
	return category, classifier.ResolveDepartment(category), nil
}

// decorate attaches vote tallies and reporter details to issues.
func (s *IssueService) decorate(ctx context.Context, issues []models.Issue, viewer *models.User) ([]models.IssueView, error) {
	views := make([]models.IssueView, len(issues))
	if len(issues) == 0 {
		return views, nil
	}

	ids := make([]primitive.ObjectID, len(issues))
	reporterIDs := make([]primitive.ObjectID, 0, len(issues))
	seen := make(map[primitive.ObjectID]bool)
	for i, issue := range issues {
		ids[i] = issue.ID
		if !seen[issue.ReportedBy] {
			seen[issue.ReportedBy] = true
			reporterIDs = append(reporterIDs, issue.ReportedBy)
		}
	}

	counts, err := s.votes.CountForIssues(ctx, ids)
	if err != nil {
		return nil, asPersistence("count votes", err)
	}
	reporters, err := s.users.FindByIDs(ctx, reporterIDs)
	if err != nil {
		return nil, asPersistence("load reporters", err)
	}
	var voted map[primitive.ObjectID]bool
	if viewer != nil {
		if voted, err = s.votes.VotedBy(ctx, viewer.ID, ids); err != nil {
			return nil, asPersistence("load viewer votes", err)
		}
	}

	for i, issue := range issues {
		views[i] = models.IssueView{Issue: issue, Votes: counts[issue.ID], UserHasVoted: voted[issue.ID]}
		if u, ok := reporters[issue.ReportedBy]; ok {
			views[i].Reporter = &models.ReporterInfo{ID: u.ID, Name: u.Name, Email: u.Email}
		}
	}
	return views, nil
}

func normalizeFilter(f ListFilter) (models.IssueFilter, error) {
	var out models.IssueFilter

	status := strings.TrimSpace(f.Status)
	if status != "" && !strings.EqualFold(status, "all") {
		parsed, ok := models.ParseStatus(status)
		if !ok {
			return out, errs.Validation("Invalid status filter")
		}
		out.Status = parsed
	}

	category := classifier.NormalizeCategory(f.Category)
	if category != "" && category != "all" {
		out.Category = category
	}

	out.Search = strings.TrimSpace(f.Search)
	switch strings.ToLower(strings.TrimSpace(f.Sort)) {
	case "", "newest":
	case "oldest":
		out.Oldest = true
	default:
		return out, errs.Validation("Invalid sort order")
	}
	return out, nil
}

// asPersistence leaves kinded errors alone and marks everything else as a
// store failure.
func asPersistence(op string, err error) error {
	var e *errs.Error
	if errors.As(err, &e) {
		return err
	}
	return errs.Persistence(op, err)
}
