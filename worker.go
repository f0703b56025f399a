package ledger

import (
	"context"

	"go.uber.org/zap"
)

type Worker struct {
	ID         int
	WorkerPool chan chan WorkRequest
	JobChannel chan WorkRequest
	quit       chan bool
	ledger     *GigLedger
}

type WorkRequest struct {
	Event *Event
	Ctx   context.Context
}

func NewWorker(id int, workerPool chan chan WorkRequest, ledger *GigLedger) Worker {
	return Worker{
		ID:         id,
		WorkerPool: workerPool,
		JobChannel: make(chan WorkRequest),
		quit:       make(chan bool),
		ledger:     ledger,
	}
}

func (w Worker) Start() {
	go func() {
		for {
			w.WorkerPool <- w.JobChannel

			select {
			case job := <-w.JobChannel:
				w.ledger.logger.Info("processing event",
					zap.String("event_type", string(job.Event.Type)),
					zap.Uint64("user_id", job.Event.UserID))

				err := w.ledger.processEvent(job.Ctx, job.Event)

				if err != nil {
					w.ledger.logger.Error("error processing event",
						zap.Error(err),
						zap.String("event_type", string(job.Event.Type)),
						zap.Uint64("user_id", job.Event.UserID))
				} else {
					w.ledger.logger.Info("event processed",
						zap.String("event_type", string(job.Event.Type)),
						zap.Uint64("user_id", job.Event.UserID))
				}

			case <-w.quit:
				return
			}
		}
	}()
}

func (w Worker) Stop() {
	close(w.quit)
}
