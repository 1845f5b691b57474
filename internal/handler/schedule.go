// Package handler 提供HTTP请求处理器
package handler

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/shiftorg/shiftorg/internal/metrics"
	"github.com/shiftorg/shiftorg/internal/repository"
	"github.com/shiftorg/shiftorg/pkg/errors"
	"github.com/shiftorg/shiftorg/pkg/model"
	"github.com/shiftorg/shiftorg/pkg/scheduler"
)

// ScheduleHandler 自动排班处理器
// 同一周的并发排班请求按周串行化，避免重复写入同一批槽位
type ScheduleHandler struct {
	staff       *repository.StaffRepository
	rules       *repository.RuleRepository
	templates   *repository.TemplateRepository
	assignments *repository.AssignmentRepository

	timeout     time.Duration
	loadPenalty float64

	mu        sync.Mutex
	weekLocks map[string]*sync.Mutex
}

// NewScheduleHandler 创建自动排班处理器
func NewScheduleHandler(
	staff *repository.StaffRepository,
	rules *repository.RuleRepository,
	templates *repository.TemplateRepository,
	assignments *repository.AssignmentRepository,
	timeout time.Duration,
	loadPenalty float64,
) *ScheduleHandler {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if loadPenalty <= 0 {
		loadPenalty = scheduler.DefaultLoadPenalty
	}
	return &ScheduleHandler{
		staff:       staff,
		rules:       rules,
		templates:   templates,
		assignments: assignments,
		timeout:     timeout,
		loadPenalty: loadPenalty,
		weekLocks:   make(map[string]*sync.Mutex),
	}
}

// weekLock 获取某周的互斥锁
func (h *ScheduleHandler) weekLock(weekStart string) *sync.Mutex {
	h.mu.Lock()
	defer h.mu.Unlock()
	lock, ok := h.weekLocks[weekStart]
	if !ok {
		lock = &sync.Mutex{}
		h.weekLocks[weekStart] = lock
	}
	return lock
}

// AutoScheduleRequest 自动排班请求
type AutoScheduleRequest struct {
	WeekStartDate string `json:"week_start_date"`
	ClearExisting bool   `json:"clear_existing,omitempty"`
}

// AutoScheduleResponse 自动排班响应
type AutoScheduleResponse struct {
	WeekStart   string                          `json:"week_start"`
	Created     []*model.Assignment             `json:"created"`
	Unmet       []scheduler.UnmetSlot           `json:"unmet"`
	Rejected    []repository.RejectedAssignment `json:"rejected,omitempty"`
	Cleared     int64                           `json:"cleared,omitempty"`
	Statistics  *scheduler.Statistics           `json:"statistics"`
	Duration    string                          `json:"duration"`
}

// AutoSchedule 为目标周自动生成排班
// POST /api/v1/schedule/auto
func (h *ScheduleHandler) AutoSchedule(w http.ResponseWriter, r *http.Request) {
	var req AutoScheduleRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	parsed, err := parseDate("week_start_date", req.WeekStartDate)
	if err != nil {
		respondError(w, err)
		return
	}
	weekStart := model.NormalizeWeekStart(parsed)
	weekKey := weekStart.Format(model.DateLayout)

	lock := h.weekLock(weekKey)
	lock.Lock()
	defer lock.Unlock()

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var cleared int64
	if req.ClearExisting {
		cleared, err = h.assignments.DeleteByWeek(ctx, weekKey)
		if err != nil {
			respondError(w, err)
			return
		}
	}

	// 一次性载入运行快照，算法过程中不再访问数据库
	sc, err := h.loadContext(ctx, weekStart, weekKey)
	if err != nil {
		respondError(w, err)
		return
	}

	result, err := scheduler.NewGreedySolver().Solve(ctx, sc)
	if err != nil {
		metrics.RecordScheduleRun(false, 0, 0, 0, 0, weekKey, 0)
		if err == context.DeadlineExceeded || ctx.Err() == context.DeadlineExceeded {
			respondError(w, errors.New(errors.CodeTimeout, "排班计算超时"))
			return
		}
		respondError(w, errors.Wrap(err, errors.CodeInternal, "排班失败"))
		return
	}

	committed, rejected, err := h.assignments.CreateBatch(ctx, result.Assignments)
	if err != nil {
		respondError(w, errors.Wrap(err, errors.CodeDatabaseError, "保存分配失败"))
		return
	}

	unmetPool, unmetQuota := 0, 0
	for _, u := range result.Unmet {
		if u.Reason == scheduler.ReasonQuotaUnmet {
			unmetQuota++
		} else {
			unmetPool++
		}
	}
	metrics.RecordScheduleRun(true, len(committed), unmetPool, unmetQuota,
		result.Statistics.FillRate, weekKey, result.Duration)

	if committed == nil {
		committed = []*model.Assignment{}
	}
	respondJSON(w, http.StatusOK, AutoScheduleResponse{
		WeekStart:  weekKey,
		Created:    committed,
		Unmet:      result.Unmet,
		Rejected:   rejected,
		Cleared:    cleared,
		Statistics: result.Statistics,
		Duration:   result.Duration.String(),
	})
}

// loadContext 载入排班运行所需的全部数据
func (h *ScheduleHandler) loadContext(ctx context.Context, weekStart time.Time, weekKey string) (*scheduler.Context, error) {
	staff, err := h.staff.List(ctx)
	if err != nil {
		return nil, err
	}
	templates, err := h.templates.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	availability, err := h.rules.ListAvailability(ctx, nil)
	if err != nil {
		return nil, err
	}
	preferences, err := h.rules.ListPreferences(ctx, nil)
	if err != nil {
		return nil, err
	}
	existing, err := h.assignments.ListByWeek(ctx, weekKey)
	if err != nil {
		return nil, err
	}

	sc := scheduler.NewContext(weekStart, staff, templates, availability, preferences, existing)
	sc.LoadPenalty = h.loadPenalty
	return sc, nil
}
