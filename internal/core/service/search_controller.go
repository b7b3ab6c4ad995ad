package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/edublog/edublog-client/internal/core/domain"
	"github.com/edublog/edublog-client/internal/core/ports"
	"github.com/edublog/edublog-client/internal/metrics"
)

// DefaultSearchDebounce is the settle period used when none is configured.
const DefaultSearchDebounce = 350 * time.Millisecond

type SearchState int

const (
	SearchIdle SearchState = iota
	SearchPending
	SearchInFlight
)

func (s SearchState) String() string {
	switch s {
	case SearchPending:
		return "pending"
	case SearchInFlight:
		return "in_flight"
	default:
		return "idle"
	}
}

// SearchController debounces a text query into post searches. Only the
// query that stays unchanged for the settle period reaches the API, and
// only the response to the most recently fired request is delivered.
//
// onResults runs on a timer goroutine. It must not call Close.
type SearchController struct {
	api       ports.PostReader
	settle    time.Duration
	onResults func([]domain.Post)
	log       zerolog.Logger

	mu     sync.Mutex
	query  string
	state  SearchState
	timer  *time.Timer
	gen    uint64 // bumped by every SetQuery; a timer only fires for its own gen
	seq    uint64 // bumped by every fired request
	cancel context.CancelFunc
	closed bool

	// held while results are delivered so Close can wait them out
	deliverMu sync.Mutex
}

func NewSearchController(api ports.PostReader, settle time.Duration, onResults func([]domain.Post), log zerolog.Logger) *SearchController {
	if settle <= 0 {
		settle = DefaultSearchDebounce
	}
	if onResults == nil {
		onResults = func([]domain.Post) {}
	}
	return &SearchController{
		api:       api,
		settle:    settle,
		onResults: onResults,
		log:       log,
	}
}

// SetQuery records q and restarts the settle timer. Calls after Close are
// ignored.
func (c *SearchController) SetQuery(q string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}

	c.query = q
	c.gen++
	if c.timer != nil && c.timer.Stop() {
		metrics.SearchCoalescedTotal.Inc()
	}
	gen := c.gen
	c.timer = time.AfterFunc(c.settle, func() { c.fire(gen) })
	c.state = SearchPending
}

func (c *SearchController) Query() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query
}

func (c *SearchController) State() SearchState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *SearchController) fire(gen uint64) {
	c.mu.Lock()
	if c.closed || gen != c.gen {
		c.mu.Unlock()
		return
	}
	c.seq++
	seq := c.seq
	if c.cancel != nil {
		c.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	c.cancel = cancel
	c.state = SearchInFlight
	term := strings.TrimSpace(c.query)
	c.mu.Unlock()

	var (
		posts []domain.Post
		err   error
	)
	if term == "" {
		posts, err = c.api.Posts(ctx)
	} else {
		posts, err = c.api.SearchPosts(ctx, term)
	}

	c.deliverMu.Lock()
	defer c.deliverMu.Unlock()

	c.mu.Lock()
	stale := seq != c.seq
	closed := c.closed
	if !stale && !closed && c.state == SearchInFlight {
		c.state = SearchIdle
	}
	c.mu.Unlock()

	switch {
	case closed:
		return
	case stale:
		metrics.SearchTotal.WithLabelValues("stale").Inc()
		c.log.Debug().Str("term", term).Uint64("seq", seq).Msg("stale search response discarded")
		return
	case err != nil:
		metrics.SearchTotal.WithLabelValues("failed").Inc()
		c.log.Warn().Err(err).Str("term", term).Msg("search failed")
		posts = []domain.Post{}
	default:
		metrics.SearchTotal.WithLabelValues("applied").Inc()
		if posts == nil {
			posts = []domain.Post{}
		}
	}
	c.onResults(posts)
}

// Close stops the pending timer and cancels the in-flight request. No
// results are delivered once Close has returned.
func (c *SearchController) Close() {
	c.deliverMu.Lock()
	defer c.deliverMu.Unlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	if c.timer != nil {
		c.timer.Stop()
	}
	if c.cancel != nil {
		c.cancel()
	}
	c.state = SearchIdle
}
