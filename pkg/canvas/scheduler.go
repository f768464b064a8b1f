package canvas

import (
	"container/heap"
	"time"
)

// Scheduler 在游戏循环上驱动的一次性定时回调队列
//
// 时钟不读系统时间，而是由 Advance 按帧推进，因此回调总是在 Update 内同步执行。
// 到期的回调按 (到期时间, 注册顺序) 依次触发；在某次 Advance 中新注册的回调
// 不会在同一次 Advance 里触发，需要周期性执行的一方在回调末尾重新注册即可。
type Scheduler struct {
	now     time.Duration
	queue   timerQueue
	nextID  TimerID
	nextSeq uint64
	stopped bool
}

type timer struct {
	id  TimerID
	due time.Duration
	seq uint64
	fn  func()
}

// NewScheduler 创建调度器，时钟从 0 开始
func NewScheduler() *Scheduler {
	return &Scheduler{nextID: 1}
}

// Now 返回调度器当前时钟
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// Pending 返回尚未触发的回调数量
func (s *Scheduler) Pending() int {
	return len(s.queue)
}

// Schedule 注册一次性回调；调度器停止后返回 0 且不注册
func (s *Scheduler) Schedule(delay time.Duration, fn func()) TimerID {
	if s.stopped || fn == nil {
		return 0
	}
	if delay < 0 {
		delay = 0
	}

	t := &timer{
		id:  s.nextID,
		due: s.now + delay,
		seq: s.nextSeq,
		fn:  fn,
	}
	s.nextID++
	s.nextSeq++

	heap.Push(&s.queue, t)
	return t.id
}

// Advance 推进时钟并触发所有到期回调，返回触发数量
func (s *Scheduler) Advance(dt time.Duration) int {
	if s.stopped {
		return 0
	}
	s.now += dt
	limit := s.nextSeq
	fired := 0

	for len(s.queue) > 0 {
		next := s.queue[0]
		if next.due > s.now || next.seq >= limit {
			break
		}
		heap.Pop(&s.queue)

		next.fn()
		fired++

		// 回调内部可能关闭了窗口
		if s.stopped {
			break
		}
	}
	return fired
}

// Stop 停止调度器并丢弃所有未触发的回调
func (s *Scheduler) Stop() {
	s.stopped = true
	s.queue = s.queue[:0]
}

// timerQueue 实现 heap.Interface，按到期时间和注册顺序排序
type timerQueue []*timer

func (q timerQueue) Len() int { return len(q) }

func (q timerQueue) Less(i, j int) bool {
	if q[i].due != q[j].due {
		return q[i].due < q[j].due
	}
	return q[i].seq < q[j].seq
}

func (q timerQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *timerQueue) Push(x any) {
	*q = append(*q, x.(*timer))
}

func (q *timerQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return t
}
