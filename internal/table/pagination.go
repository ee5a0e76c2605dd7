package table

import "github.com/roach88/tablestate/internal/record"

// DefaultPageSize is used when neither PageSize nor DefaultPageSize is set.
const DefaultPageSize = 10

// PaginationConfig configures pagination. A nil *PaginationConfig on Props
// means pagination with defaults; Disabled turns it off entirely.
//
// Current and PageSize are controlled when positive: user page changes are
// emitted but not committed.
type PaginationConfig struct {
	Disabled        bool
	Current         int
	DefaultCurrent  int
	PageSize        int
	DefaultPageSize int
	// Total overrides the row count used for clamping when positive.
	Total int

	OnChange         func(current, pageSize int)
	OnShowSizeChange func(current, pageSize int)
}

// Pagination is the effective pagination state.
type Pagination struct {
	Current  int `json:"current" yaml:"current"`
	PageSize int `json:"page_size" yaml:"page_size"`
	Total    int `json:"total" yaml:"total"`
}

// MaxCurrent clamps current so that it never points past the last page.
// If (current-1)*pageSize >= total it returns floor((total-1)/pageSize)+1,
// otherwise current unchanged. The result is at least 1, so an empty data
// set yields page 1. MaxCurrent is idempotent.
func MaxCurrent(total, pageSize, current int) int {
	if pageSize < 1 {
		pageSize = 1
	}
	if current < 1 {
		current = 1
	}
	if (current-1)*pageSize >= total {
		current = floorDiv(total-1, pageSize) + 1
	}
	if current < 1 {
		return 1
	}
	return current
}

// floorDiv rounds toward negative infinity; Go's / truncates toward zero.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// Slice returns data[(current-1)*pageSize : current*pageSize], bounded by
// len(data). A non-positive pageSize means pagination is disabled and all
// of data is returned.
func Slice(data []record.Object, current, pageSize int) []record.Object {
	if pageSize <= 0 {
		return data
	}
	if current < 1 {
		current = 1
	}
	start := (current - 1) * pageSize
	if start >= len(data) {
		return []record.Object{}
	}
	end := min(start+pageSize, len(data))
	return data[start:end]
}

// paginationState holds the locally owned page and page size.
type paginationState struct {
	enabled  bool
	current  int
	pageSize int

	currentControlled  bool
	pageSizeControlled bool
	total              int // configured total, 0 when derived from data
}

// newPaginationState seeds the state from config. It returns false for
// valid when the configured page size was non-positive.
func newPaginationState(cfg *PaginationConfig) (paginationState, bool) {
	s := paginationState{enabled: true, current: 1, pageSize: DefaultPageSize}
	if cfg == nil {
		return s, true
	}
	if cfg.DefaultCurrent > 0 {
		s.current = cfg.DefaultCurrent
	}
	valid := cfg.DefaultPageSize >= 0 && cfg.PageSize >= 0
	if cfg.DefaultPageSize > 0 {
		s.pageSize = cfg.DefaultPageSize
	}
	s.reconcile(cfg)
	return s, valid
}

// reconcile applies controlled values from cfg; controlled always wins.
func (s *paginationState) reconcile(cfg *PaginationConfig) {
	if cfg == nil {
		s.enabled = true
		s.currentControlled = false
		s.pageSizeControlled = false
		s.total = 0
		return
	}
	s.enabled = !cfg.Disabled
	s.currentControlled = cfg.Current > 0
	s.pageSizeControlled = cfg.PageSize > 0
	if s.currentControlled {
		s.current = cfg.Current
	}
	if s.pageSizeControlled {
		s.pageSize = cfg.PageSize
	}
	s.total = max(cfg.Total, 0)
}

// effective computes the clamped pagination for dataLen local rows.
func (s paginationState) effective(dataLen int) Pagination {
	total := dataLen
	if s.total > 0 {
		total = s.total
	}
	return Pagination{
		Current:  MaxCurrent(total, s.pageSize, s.current),
		PageSize: s.pageSize,
		Total:    total,
	}
}
