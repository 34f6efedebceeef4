package worker

import (
	"context"
	"sync"
	"time"

	"store_sales/internal/domain/sales"
)

// Handler scores one record. The pipeline is stateless so handlers run concurrently.
type Handler func(ctx context.Context, record sales.RawItemRecord) (*sales.Prediction, error)

// Job là một record cần xử lý, ID là vị trí của record trong input
type Job struct {
	ID     int
	Record sales.RawItemRecord
}

// Result là kết quả xử lý một Job
type Result struct {
	JobID      int
	Prediction *sales.Prediction
	Error      error
	Duration   time.Duration
}

// Pool quản lý các workers xử lý jobs song song
type Pool struct {
	workers      int
	requestQueue chan *Job
	resultQueue  chan *Result
	handler      Handler
	wg           sync.WaitGroup
	ctx          context.Context
	stopOnce     sync.Once
}

func NewPool(ctx context.Context, workers, queueSize int, handler Handler) *Pool {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = 100
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return &Pool{
		workers:      workers,
		requestQueue: make(chan *Job, queueSize),
		resultQueue:  make(chan *Result, queueSize),
		handler:      handler,
		ctx:          ctx,
	}
}

func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

// Stop đóng request queue, đợi workers xử lý hết rồi đóng result queue.
// Caller phải tiếp tục đọc Results() cho tới khi channel đóng.
func (p *Pool) Stop() {
	p.stopOnce.Do(func() {
		close(p.requestQueue)
		p.wg.Wait()
		close(p.resultQueue)
	})
}

// Submit gửi job vào queue
func (p *Pool) Submit(job *Job) error {
	select {
	case <-p.ctx.Done():
		return p.ctx.Err()
	case p.requestQueue <- job:
		return nil
	}
}

func (p *Pool) Results() <-chan *Result {
	return p.resultQueue
}

func (p *Pool) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case job, ok := <-p.requestQueue:
			if !ok {
				return
			}

			start := time.Now()
			prediction, err := p.handler(p.ctx, job.Record)
			p.sendResult(&Result{
				JobID:      job.ID,
				Prediction: prediction,
				Error:      err,
				Duration:   time.Since(start),
			})
		}
	}
}

func (p *Pool) sendResult(result *Result) {
	select {
	case <-p.ctx.Done():
	case p.resultQueue <- result:
	}
}
