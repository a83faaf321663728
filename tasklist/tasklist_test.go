package tasklist

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type TaskListSuite struct {
	suite.Suite
	list []Task
}

func TestTaskListSuite(t *testing.T) {
	suite.Run(t, new(TaskListSuite))
}

func (s *TaskListSuite) SetupTest() {
	s.list = Add(nil, Task{ID: "t1", Title: "Name approval (RUN)"})
	s.list = Add(s.list, Task{ID: "t2", Title: "DSC for directors", Status: StatusInProgress})
	s.list = Add(s.list, Task{Title: "File SPICe+"})
}

func (s *TaskListSuite) TestAddDefaults() {
	s.Require().Len(s.list, 3)
	s.NotEmpty(s.list[2].ID)
	s.Equal(StatusPending, s.list[0].Status)
	s.Equal(StatusInProgress, s.list[1].Status)
}

func (s *TaskListSuite) TestEdit() {
	s.Run("changes only patched fields", func() {
		done := StatusDone
		out, err := Edit(s.list, "t1", Patch{Status: &done})
		s.Require().NoError(err)
		s.Equal(StatusDone, out[0].Status)
		s.Equal("Name approval (RUN)", out[0].Title)
		s.Equal(StatusPending, s.list[0].Status, "original list untouched")
	})
	s.Run("unknown id", func() {
		title := "x"
		_, err := Edit(s.list, "nope", Patch{Title: &title})
		s.ErrorIs(err, ErrTaskNotFound)
	})
}

func (s *TaskListSuite) TestDelete() {
	out, err := Delete(s.list, "t2")
	s.Require().NoError(err)
	s.Len(out, 2)
	s.Equal(-1, Index(out, "t2"))
	s.Len(s.list, 3)

	_, err = Delete(out, "t2")
	s.ErrorIs(err, ErrTaskNotFound)
}

func (s *TaskListSuite) TestFilters() {
	s.Len(ByStatus(s.list, StatusPending), 2)

	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	past := now.Add(-24 * time.Hour)
	due := past
	out, err := Edit(s.list, "t1", Patch{DueDate: &due})
	s.Require().NoError(err)
	s.Len(Overdue(out, now), 1)

	done := StatusDone
	out, err = Edit(out, "t1", Patch{Status: &done})
	s.Require().NoError(err)
	s.Empty(Overdue(out, now))
}
