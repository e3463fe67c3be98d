// Package remotetest provides an in-process task store that speaks the same
// four verbs as the real backend, for tests.
package remotetest

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Joseda-hg/lazymemo/internal/model"
)

const basePath = "/todo/"

type Request struct {
	Method string
	Path   string
}

type Server struct {
	// DefaultMark is applied to tasks created through POST.
	DefaultMark bool
	// StringIDs makes the store assign uuid string ids instead of numbers.
	StringIDs bool

	mu       sync.Mutex
	tasks    []model.Task
	nextID   int64
	requests []Request
	failures map[string]int

	http *httptest.Server
}

type taskPatch struct {
	Content *string `json:"content"`
	Checked *bool   `json:"checked"`
	Mark    *bool   `json:"mark"`
}

func NewServer(tasks ...model.Task) *Server {
	s := &Server{
		tasks:    append([]model.Task(nil), tasks...),
		nextID:   int64(len(tasks) + 1),
		failures: make(map[string]int),
	}
	s.http = httptest.NewServer(s.Handler())
	return s
}

func (s *Server) Handler() http.Handler {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Pre(s.recordRequest)

	e.GET(basePath, s.listTasks)
	e.POST(basePath, s.createTask)
	e.PATCH(basePath+":id", s.updateTask)
	e.DELETE(basePath+":id", s.deleteTask)
	return e
}

// URL is the collection base URL clients should use.
func (s *Server) URL() string {
	return s.http.URL + basePath
}

func (s *Server) Close() {
	s.http.Close()
}

// FailNext makes the next n requests with method answer 500.
func (s *Server) FailNext(method string, n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[strings.ToUpper(method)] += n
}

func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

func (s *Server) RequestCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

func (s *Server) Tasks() []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Task(nil), s.tasks...)
}

func (s *Server) recordRequest(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		method := c.Request().Method

		s.mu.Lock()
		s.requests = append(s.requests, Request{Method: method, Path: c.Request().URL.Path})
		fail := s.failures[method] > 0
		if fail {
			s.failures[method]--
		}
		s.mu.Unlock()

		if fail {
			return c.String(http.StatusInternalServerError, "injected failure")
		}
		return next(c)
	}
}

func (s *Server) listTasks(c echo.Context) error {
	return c.JSON(http.StatusOK, s.Tasks())
}

func (s *Server) createTask(c echo.Context) error {
	var payload struct {
		Content string `json:"content"`
	}
	if err := c.Bind(&payload); err != nil {
		return c.String(http.StatusBadRequest, err.Error())
	}

	s.mu.Lock()
	task := model.Task{ID: s.assignID(), Content: payload.Content, Mark: s.DefaultMark}
	s.tasks = append(s.tasks, task)
	s.mu.Unlock()

	return c.JSON(http.StatusCreated, task)
}

func (s *Server) updateTask(c echo.Context) error {
	var patch taskPatch
	if err := c.Bind(&patch); err != nil {
		return c.String(http.StatusBadRequest, err.Error())
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	index := s.indexOf(c.Param("id"))
	if index < 0 {
		return c.String(http.StatusNotFound, "task not found")
	}

	task := s.tasks[index]
	if patch.Content != nil {
		task.Content = *patch.Content
	}
	if patch.Checked != nil {
		task.Checked = *patch.Checked
	}
	if patch.Mark != nil {
		task.Mark = *patch.Mark
	}
	s.tasks[index] = task
	return c.JSON(http.StatusOK, task)
}

func (s *Server) deleteTask(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	index := s.indexOf(c.Param("id"))
	if index < 0 {
		return c.String(http.StatusNotFound, "task not found")
	}
	s.tasks = append(s.tasks[:index], s.tasks[index+1:]...)
	return c.JSON(http.StatusOK, struct{}{})
}

func (s *Server) assignID() model.ID {
	if s.StringIDs {
		return model.NewID(uuid.NewString())
	}
	id := model.NumericID(s.nextID)
	s.nextID++
	return id
}

func (s *Server) indexOf(id string) int {
	for i, task := range s.tasks {
		if task.ID.String() == id {
			return i
		}
	}
	return -1
}

// NumericTasks builds tasks with ids 1..n from contents, for seeding.
func NumericTasks(contents ...string) []model.Task {
	tasks := make([]model.Task, 0, len(contents))
	for i, content := range contents {
		tasks = append(tasks, model.Task{ID: model.NumericID(int64(i + 1)), Content: content})
	}
	return tasks
}
