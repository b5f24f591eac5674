// Package aggregator builds the read-only context snapshot that suggestions are
// computed from. Sources are read concurrently and each is bounded by a timeout;
// a source that fails is recorded as unavailable rather than failing the snapshot.
package aggregator

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Maverick-list/Personal-Advance-Portofolio/internal/metrics"
	"github.com/Maverick-list/Personal-Advance-Portofolio/internal/model"
)

// TaskSource lists tasks from the Task Store.
type TaskSource interface {
	ListTasks(ctx context.Context) ([]model.Task, error)
}

// ContentSource lists articles from the Content Store.
type ContentSource interface {
	ListArticles(ctx context.Context) ([]model.Article, error)
}

// Aggregator assembles ContextSnapshots.
type Aggregator struct {
	tasks   TaskSource
	content ContentSource
	timeout time.Duration
	log     zerolog.Logger
	now     func() time.Time
}

// New returns an aggregator. A nil source is always reported unavailable.
func New(tasks TaskSource, content ContentSource, timeout time.Duration, log zerolog.Logger) *Aggregator {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &Aggregator{
		tasks:   tasks,
		content: content,
		timeout: timeout,
		log:     log,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Snapshot reads every source and never returns an error.
func (a *Aggregator) Snapshot(ctx context.Context) model.ContextSnapshot {
	snap := model.ContextSnapshot{
		TakenAt:       a.now(),
		OverdueTasks:  []model.TaskDeadline{},
		UpcomingTasks: []model.TaskDeadline{},
	}

	var (
		wg              sync.WaitGroup
		tasks           []model.Task
		articles        []model.Article
		taskErr, artErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		if a.tasks == nil {
			taskErr = fmt.Errorf("%w: task store not configured", model.ErrUpstreamUnavailable)
			return
		}
		tasks, taskErr = fetch(ctx, a.timeout, a.tasks.ListTasks)
	}()
	go func() {
		defer wg.Done()
		if a.content == nil {
			artErr = fmt.Errorf("%w: content store not configured", model.ErrUpstreamUnavailable)
			return
		}
		articles, artErr = fetch(ctx, a.timeout, a.content.ListArticles)
	}()
	wg.Wait()

	if taskErr != nil {
		a.unavailable(&snap, model.SourceTasks, taskErr)
	} else {
		partitionTasks(&snap, tasks)
	}
	if artErr != nil {
		a.unavailable(&snap, model.SourceContent, artErr)
	} else {
		snap.ContentActivity = summarizeContent(articles)
	}
	return snap
}

func (a *Aggregator) unavailable(snap *model.ContextSnapshot, source string, err error) {
	snap.MarkUnavailable(source)
	metrics.RecordUpstreamFailure(source)
	a.log.Warn().Err(err).Str("source", source).Msg("context source unavailable")
}

// fetch runs f under timeout and returns as soon as the deadline passes even if f
// ignores its context.
func fetch[T any](ctx context.Context, timeout time.Duration, f func(context.Context) ([]T, error)) ([]T, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		v   []T
		err error
	}
	ch := make(chan result, 1)
	go func() {
		v, err := f(ctx)
		ch <- result{v: v, err: err}
	}()

	select {
	case r := <-ch:
		return r.v, r.err
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %v", model.ErrUpstreamUnavailable, ctx.Err())
	}
}

func partitionTasks(snap *model.ContextSnapshot, tasks []model.Task) {
	snap.TotalTaskCount = len(tasks)
	for _, t := range tasks {
		if t.Completed {
			continue
		}
		snap.PendingTaskCount++
		if t.Deadline == nil {
			continue
		}
		td := model.TaskDeadline{Title: t.Title, Deadline: t.Deadline.UTC()}
		if td.Deadline.Before(snap.TakenAt) {
			snap.OverdueTasks = append(snap.OverdueTasks, td)
		} else {
			snap.UpcomingTasks = append(snap.UpcomingTasks, td)
		}
	}
	sortByDeadline(snap.OverdueTasks)
	sortByDeadline(snap.UpcomingTasks)
}

func sortByDeadline(ts []model.TaskDeadline) {
	sort.SliceStable(ts, func(i, j int) bool {
		if !ts[i].Deadline.Equal(ts[j].Deadline) {
			return ts[i].Deadline.Before(ts[j].Deadline)
		}
		return ts[i].Title < ts[j].Title
	})
}

func summarizeContent(articles []model.Article) model.ContentActivity {
	var ca model.ContentActivity
	for _, a := range articles {
		if a.Published {
			ca.PublishedArticles++
		} else {
			ca.UnpublishedDrafts++
		}
		ca.Likes += a.Likes
		ca.Comments += a.Comments
	}
	return ca
}
