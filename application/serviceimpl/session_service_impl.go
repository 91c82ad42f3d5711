package serviceimpl

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"blogpost-generator/application/render"
	"blogpost-generator/domain/models"
	"blogpost-generator/domain/repositories"
	"blogpost-generator/domain/services"
	"blogpost-generator/pkg/apperrors"
	"blogpost-generator/pkg/logger"
	"blogpost-generator/pkg/utils"
)

// CopiedFeedback is how long the view reports a successful copy.
const CopiedFeedback = 2 * time.Second

type SessionServiceImpl struct {
	repo      repositories.SessionRepository
	generator services.GenerationService

	locks sync.Map // uuid.UUID -> *sync.Mutex

	listenersMu sync.RWMutex
	listeners   []services.SessionListener

	attempts sync.WaitGroup
	now      func() time.Time
}

func NewSessionService(repo repositories.SessionRepository, generator services.GenerationService) services.SessionService {
	return newSessionService(repo, generator, time.Now)
}

func newSessionService(repo repositories.SessionRepository, generator services.GenerationService, now func() time.Time) *SessionServiceImpl {
	s := &SessionServiceImpl{
		repo:      repo,
		generator: generator,
		now:       now,
	}
	repo.OnEvicted(func(id uuid.UUID) {
		s.locks.Delete(id)
		logger.Session(id.String(), "expired", "Session expired", nil)
	})
	return s
}

func (s *SessionServiceImpl) lockFor(id uuid.UUID) *sync.Mutex {
	mu, _ := s.locks.LoadOrStore(id, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

func (s *SessionServiceImpl) load(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	session, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperrors.NotFound(apperrors.MsgSessionNotFound)
	}
	return session, nil
}

// mutate runs fn under the session lock. When fn reports a change the session
// is saved and listeners are notified, even if fn also returns an error.
// Listeners run while the lock is held so views of one session arrive in order.
func (s *SessionServiceImpl) mutate(ctx context.Context, id uuid.UUID, fn func(session *models.Session) (bool, error)) (*models.Session, error) {
	mu := s.lockFor(id)
	mu.Lock()
	defer mu.Unlock()

	session, err := s.load(ctx, id)
	if err != nil {
		// Unknown ids must not leave a lock behind.
		s.locks.CompareAndDelete(id, mu)
		return nil, err
	}

	changed, fnErr := fn(session)
	if changed {
		session.UpdatedAt = s.now()
		if err := s.repo.Save(ctx, session); err != nil {
			return nil, err
		}
	}
	snapshot := session.Clone()

	if changed {
		s.notify(snapshot)
	}
	return snapshot, fnErr
}

func (s *SessionServiceImpl) Create(ctx context.Context, initial *models.GenerationParameters) (*models.Session, error) {
	params := models.DefaultParameters()
	if initial != nil {
		params = initial.WithDefaults()
		if issues := utils.ValidateStruct(params); len(issues) > 0 {
			return nil, apperrors.Validation(issues[0].Message)
		}
	}

	session := models.NewSession(params, s.now())
	if err := s.repo.Save(ctx, session); err != nil {
		return nil, err
	}

	logger.Session(session.ID.String(), "created", "Session created", nil)
	return session.Clone(), nil
}

func (s *SessionServiceImpl) Get(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	return s.mutate(ctx, id, func(*models.Session) (bool, error) { return false, nil })
}

func (s *SessionServiceImpl) UpdateField(ctx context.Context, id uuid.UUID, field models.Field, value string) (*models.Session, error) {
	if err := utils.ValidateField(field, value); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	return s.mutate(ctx, id, func(session *models.Session) (bool, error) {
		applyField(&session.Params, field, value)
		return true, nil
	})
}

// applyField assumes value already passed ValidateField.
func applyField(p *models.GenerationParameters, field models.Field, value string) {
	switch field {
	case models.FieldProductURL:
		p.ProductURL = value
	case models.FieldAffiliateLink:
		p.AffiliateLink = value
	case models.FieldTargetAudience:
		p.TargetAudience = value
	case models.FieldWritingStyle:
		p.WritingStyle = value
	case models.FieldLanguage:
		p.Language = value
	case models.FieldSEOKeywords:
		p.SEOKeywords = value
	case models.FieldArticleLength:
		p.ArticleLength = value
	case models.FieldGenerateImages:
		p.GenerateImages, _ = strconv.ParseBool(strings.TrimSpace(value))
	}
}

// Submit starts a new attempt. The previous result or error is discarded and any
// attempt still in flight becomes stale.
func (s *SessionServiceImpl) Submit(ctx context.Context, id uuid.UUID) (uint64, error) {
	var (
		requestID uint64
		params    models.GenerationParameters
	)

	_, err := s.mutate(ctx, id, func(session *models.Session) (bool, error) {
		session.LastRequestID++
		session.CopiedUntil = time.Time{}

		if session.Params.ProductURL == "" {
			appErr := apperrors.Validation(apperrors.MsgProductURLRequired)
			session.State = models.FailedState(session.LastRequestID, appErr.Message, string(appErr.Kind))
			return true, appErr
		}

		requestID = session.LastRequestID
		params = session.Params
		session.State = models.RequestingState(requestID)
		return true, nil
	})
	if err != nil {
		return 0, err
	}

	logger.Session(id.String(), "submitted", "Generation attempt started", map[string]interface{}{
		"request_id":      requestID,
		"generate_images": params.GenerateImages,
	})

	s.attempts.Add(1)
	go s.runAttempt(id, requestID, params)
	return requestID, nil
}

// runAttempt is detached from the submitting request. Its outcome is applied only
// while requestID is still the latest attempt of the session.
func (s *SessionServiceImpl) runAttempt(id uuid.UUID, requestID uint64, params models.GenerationParameters) {
	defer s.attempts.Done()

	ctx := context.Background()
	result, genErr := s.generator.Generate(ctx, params)

	_, err := s.mutate(ctx, id, func(session *models.Session) (bool, error) {
		if session.LastRequestID != requestID {
			logger.Session(id.String(), "stale_result_dropped", "Ignoring result of superseded attempt", map[string]interface{}{
				"request_id": requestID,
				"latest":     session.LastRequestID,
			})
			return false, nil
		}

		if genErr != nil {
			session.State = models.FailedState(requestID, genErr.Error(), string(apperrors.KindOf(genErr)))
		} else {
			session.State = models.SucceededState(requestID, result)
		}
		return true, nil
	})
	if err != nil {
		logger.Warn(logger.CategorySession, "attempt_orphaned", "Session gone before attempt finished", map[string]interface{}{
			"session_id": id.String(),
			"request_id": requestID,
		})
	}
}

func (s *SessionServiceImpl) View(ctx context.Context, id uuid.UUID) (*models.DisplayView, error) {
	_, view, err := s.Describe(ctx, id)
	return view, err
}

func (s *SessionServiceImpl) Describe(ctx context.Context, id uuid.UUID) (*models.Session, *models.DisplayView, error) {
	session, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return session, BuildDisplayView(session, s.now()), nil
}

// BuildDisplayView resolves the state into what the display shows. A validation
// failure is shown as is, other failures get the generic prefix.
func BuildDisplayView(session *models.Session, now time.Time) *models.DisplayView {
	view := &models.DisplayView{
		SessionID: session.ID.String(),
		Kind:      session.State.Kind,
		RequestID: session.State.RequestID,
	}

	switch session.State.Kind {
	case models.ViewRequesting:
		view.Loading = true
	case models.ViewFailed:
		if session.State.ErrorKind == string(apperrors.KindValidation) {
			view.Error = session.State.Error
		} else {
			view.Error = models.ErrorPrefix + session.State.Error
		}
	case models.ViewSucceeded:
		result := session.State.Result
		if result != nil && result.Article != "" {
			view.Article = result.Article
			view.Nodes = render.ParseArticle(result.Article, result.Images)
			view.Copied = now.Before(session.CopiedUntil)
			break
		}
		view.Empty = &models.EmptyState{Title: models.EmptyStateTitle, Hint: models.EmptyStateHint}
	default:
		view.Empty = &models.EmptyState{Title: models.EmptyStateTitle, Hint: models.EmptyStateHint}
	}
	return view
}

func currentArticle(session *models.Session) (*models.GenerationResult, bool) {
	if session.State.Kind != models.ViewSucceeded || session.State.Result == nil || session.State.Result.Article == "" {
		return nil, false
	}
	return session.State.Result, true
}

func (s *SessionServiceImpl) Copy(ctx context.Context, id uuid.UUID, caps models.ClientCapabilities) (string, error) {
	var article string
	_, err := s.mutate(ctx, id, func(session *models.Session) (bool, error) {
		result, ok := currentArticle(session)
		if !ok {
			return false, apperrors.Validation(apperrors.MsgNoArticle)
		}
		if !caps.Clipboard {
			return false, apperrors.Capability(apperrors.MsgClipboardFailed)
		}
		article = result.Article
		session.CopiedUntil = s.now().Add(CopiedFeedback)
		return true, nil
	})
	if err != nil {
		return "", err
	}
	return article, nil
}

func (s *SessionServiceImpl) Share(ctx context.Context, id uuid.UUID, caps models.ClientCapabilities) (*models.ShareData, error) {
	session, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	result, ok := currentArticle(session)
	if !ok {
		return nil, apperrors.Validation(apperrors.MsgNoArticle)
	}
	if session.Params.ProductURL == "" {
		return nil, apperrors.Validation(apperrors.MsgProductURLRequired)
	}
	if !caps.NativeShare {
		return nil, apperrors.Capability(apperrors.MsgShareUnsupported)
	}

	data := render.ExtractShareData(result.Article, session.Params.ProductURL)
	return &data, nil
}

func (s *SessionServiceImpl) ExportHTML(ctx context.Context, id uuid.UUID) (string, error) {
	session, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	result, ok := currentArticle(session)
	if !ok {
		return "", apperrors.Validation(apperrors.MsgNoArticle)
	}
	return render.ToDocument(result.Article, result.Images)
}

func (s *SessionServiceImpl) Subscribe(listener services.SessionListener) {
	s.listenersMu.Lock()
	defer s.listenersMu.Unlock()
	s.listeners = append(s.listeners, listener)
}

func (s *SessionServiceImpl) notify(session *models.Session) {
	s.listenersMu.RLock()
	listeners := s.listeners
	s.listenersMu.RUnlock()
	if len(listeners) == 0 {
		return
	}

	view := BuildDisplayView(session, s.now())
	for _, l := range listeners {
		l(session.ID, view)
	}
}

func (s *SessionServiceImpl) SweepExpired() int {
	return s.repo.DeleteExpired()
}

func (s *SessionServiceImpl) Count() int {
	return s.repo.Count()
}

func (s *SessionServiceImpl) Wait() {
	s.attempts.Wait()
}
