// internal/logs/admission.go
package logs

import (
	"sync"

	"golang.org/x/sync/semaphore"
)

// Admission bounds concurrent live streams globally and per service.
// A limit of zero or less disables that bound. It never queues: a stream
// that does not fit is rejected immediately.
type Admission struct {
	global     *semaphore.Weighted
	perService int64

	mu       sync.Mutex
	services map[string]*semaphore.Weighted
	active   map[string]int64
}

// NewAdmission creates an admission policy.
func NewAdmission(maxTotal, maxPerService int) *Admission {
	a := &Admission{
		perService: int64(maxPerService),
		services:   make(map[string]*semaphore.Weighted),
		active:     make(map[string]int64),
	}
	if maxTotal > 0 {
		a.global = semaphore.NewWeighted(int64(maxTotal))
	}
	return a
}

// TryAcquire reserves a stream slot for service. On success the returned
// release func must be called exactly once.
func (a *Admission) TryAcquire(service string) (release func(), ok bool) {
	if a.global != nil && !a.global.TryAcquire(1) {
		return nil, false
	}

	a.mu.Lock()
	sem := a.serviceSemaphore(service)
	if sem != nil && !sem.TryAcquire(1) {
		a.mu.Unlock()
		if a.global != nil {
			a.global.Release(1)
		}
		return nil, false
	}
	a.active[service]++
	a.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			a.mu.Lock()
			a.active[service]--
			if a.active[service] <= 0 {
				delete(a.active, service)
			}
			a.mu.Unlock()
			if sem != nil {
				sem.Release(1)
			}
			if a.global != nil {
				a.global.Release(1)
			}
		})
	}, true
}

// serviceSemaphore must be called with mu held.
func (a *Admission) serviceSemaphore(service string) *semaphore.Weighted {
	if a.perService <= 0 {
		return nil
	}
	sem, ok := a.services[service]
	if !ok {
		sem = semaphore.NewWeighted(a.perService)
		a.services[service] = sem
	}
	return sem
}

// Active returns the number of open streams per service and in total.
func (a *Admission) Active() (total int64, byService map[string]int64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	byService = make(map[string]int64, len(a.active))
	for svc, n := range a.active {
		byService[svc] = n
		total += n
	}
	return total, byService
}
