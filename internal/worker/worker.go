package worker

import "sync"

// Task 是交給 pool 執行的工作，目前主要是對外寄信
type Task func()

// Pool 將工作移出請求的 goroutine 執行
type Pool interface {
	Submit(Task)
	Stop()
}

// NewPool 建立 n 個 worker 的 pool，n<=0 時退回 1
func NewPool(n int) Pool {
	if n <= 0 {
		n = 1
	}
	p := &pool{jobs: make(chan Task)}
	p.wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				if job != nil {
					job()
				}
			}
		}()
	}
	return p
}

type pool struct {
	jobs chan Task
	wg   sync.WaitGroup
}

func (p *pool) Submit(t Task) {
	p.jobs <- t
}

func (p *pool) Stop() {
	close(p.jobs)
	p.wg.Wait()
}
