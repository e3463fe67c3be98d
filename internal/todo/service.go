// Package todo applies task mutations against the remote store and feeds the
// store's answers back into the local task list.
package todo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	goerrors "github.com/go-errors/errors"
	"github.com/rs/zerolog"

	"github.com/Joseda-hg/lazymemo/internal/model"
	"github.com/Joseda-hg/lazymemo/internal/tasklist"
)

var (
	ErrEmptyContent = errors.New("content is required")
	ErrTaskNotFound = errors.New("task not found")
	// ErrUnexpectedTask means the store answered with a task that cannot be
	// matched to the one that was sent.
	ErrUnexpectedTask = errors.New("store returned unexpected task")
)

// Remote is the task collection behind the four REST verbs.
type Remote interface {
	List(ctx context.Context) ([]model.Task, error)
	Create(ctx context.Context, content string) (model.Task, error)
	Update(ctx context.Context, task model.Task) (model.Task, error)
	Delete(ctx context.Context, id model.ID) error
}

// Journal records successful mutations. Implementations must not affect the
// outcome of the mutation itself.
type Journal interface {
	RecordCreated(ctx context.Context, task model.Task) error
	RecordUpdated(ctx context.Context, before, after model.Task) error
	RecordDeleted(ctx context.Context, task model.Task) error
}

type Service struct {
	remote  Remote
	list    *tasklist.List
	journal Journal
	logger  zerolog.Logger
}

func NewService(remote Remote, list *tasklist.List, journal Journal, logger zerolog.Logger) *Service {
	if list == nil {
		list = tasklist.New(tasklist.All)
	}
	return &Service{remote: remote, list: list, journal: journal, logger: logger}
}

func (s *Service) List() *tasklist.List {
	return s.list
}

func (s *Service) Category() tasklist.Category {
	return s.list.Category()
}

func (s *Service) SetCategory(category tasklist.Category) {
	s.list.SetCategory(category)
}

func (s *Service) Visible() []model.Task {
	return s.list.Visible()
}

// Load fetches the full collection and resets both lists from it.
func (s *Service) Load(ctx context.Context) error {
	tasks, err := s.remote.List(ctx)
	if err != nil {
		s.logFailure(err, "load tasks", model.ID{})
		return err
	}
	s.list.Load(tasks)
	s.logger.Info().Int("tasks", len(tasks)).Int("visible", s.list.VisibleLen()).Msg("tasks loaded")
	return nil
}

func (s *Service) Create(ctx context.Context, content string) (model.Task, error) {
	if isBlank(content) {
		return model.Task{}, ErrEmptyContent
	}

	created, err := s.remote.Create(ctx, content)
	if err != nil {
		s.logFailure(err, "create task", model.ID{})
		return model.Task{}, err
	}
	if created.ID.IsZero() {
		err := fmt.Errorf("%w: created task has no id", ErrUnexpectedTask)
		s.logFailure(err, "create task", model.ID{})
		return model.Task{}, err
	}

	s.list.Append(created)
	s.logger.Info().Str("task_id", created.ID.String()).Bool("visible", s.list.IsVisible(created.ID)).Msg("task created")
	if s.journal != nil {
		if err := s.journal.RecordCreated(ctx, created); err != nil {
			s.logger.Warn().Err(err).Str("task_id", created.ID.String()).Msg("journal write failed")
		}
	}
	return created, nil
}

func (s *Service) ToggleChecked(ctx context.Context, id model.ID) (model.Task, error) {
	return s.update(ctx, id, "toggle checked", func(task *model.Task) error {
		task.Checked = !task.Checked
		return nil
	})
}

func (s *Service) ToggleMark(ctx context.Context, id model.ID) (model.Task, error) {
	return s.update(ctx, id, "toggle mark", func(task *model.Task) error {
		task.Mark = !task.Mark
		return nil
	})
}

func (s *Service) EditContent(ctx context.Context, id model.ID, content string) (model.Task, error) {
	return s.update(ctx, id, "edit content", func(task *model.Task) error {
		if isBlank(content) {
			return ErrEmptyContent
		}
		task.Content = content
		return nil
	})
}

func (s *Service) Delete(ctx context.Context, id model.ID) error {
	current, ok := s.list.Get(id)
	if !ok {
		return ErrTaskNotFound
	}

	if err := s.remote.Delete(ctx, id); err != nil {
		s.logFailure(err, "delete task", id)
		return err
	}

	s.list.Remove(id)
	s.logger.Info().Str("task_id", id.String()).Msg("task deleted")
	if s.journal != nil {
		if err := s.journal.RecordDeleted(ctx, current); err != nil {
			s.logger.Warn().Err(err).Str("task_id", id.String()).Msg("journal write failed")
		}
	}
	return nil
}

// update sends the current task with one change applied and stores the
// store's canonical copy. Validation errors from change skip the network.
func (s *Service) update(ctx context.Context, id model.ID, action string, change func(*model.Task) error) (model.Task, error) {
	current, ok := s.list.Get(id)
	if !ok {
		return model.Task{}, ErrTaskNotFound
	}

	next := current
	if err := change(&next); err != nil {
		return model.Task{}, err
	}

	updated, err := s.remote.Update(ctx, next)
	if err != nil {
		s.logFailure(err, action, id)
		return model.Task{}, err
	}
	if updated.ID.IsZero() {
		updated.ID = current.ID
	}
	if !updated.ID.Equal(current.ID) {
		err := fmt.Errorf("%w: sent %s, got %s", ErrUnexpectedTask, current.ID, updated.ID)
		s.logFailure(err, action, id)
		return model.Task{}, err
	}

	if !s.list.Replace(updated) {
		return model.Task{}, ErrTaskNotFound
	}
	s.logger.Info().
		Str("task_id", id.String()).
		Str("action", action).
		Bool("visible", s.list.IsVisible(id)).
		Msg("task updated")
	if s.journal != nil {
		if err := s.journal.RecordUpdated(ctx, current, updated); err != nil {
			s.logger.Warn().Err(err).Str("task_id", id.String()).Msg("journal write failed")
		}
	}
	return updated, nil
}

func (s *Service) logFailure(err error, action string, id model.ID) {
	event := s.logger.Error().Err(err).Str("action", action)
	if !id.IsZero() {
		event = event.Str("task_id", id.String())
	}
	event.Msg("remote call failed")

	var wrapped *goerrors.Error
	if errors.As(err, &wrapped) {
		s.logger.Debug().Str("action", action).Msg(wrapped.ErrorStack())
	}
}

func isBlank(content string) bool {
	return len(strings.TrimSpace(content)) < 1
}
