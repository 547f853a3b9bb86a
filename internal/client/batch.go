package client

import (
	"context"
	"fmt"
	"sync"
)

const maxWorkers = 4

// Decision is a moderation verdict for a pending job.
type Decision int

const (
	Approve Decision = iota
	Reject
)

func (d Decision) String() string {
	if d == Reject {
		return "reject"
	}
	return "approve"
}

// ModerationResult pairs a job id with the outcome of its moderation call.
type ModerationResult struct {
	ID  string
	Err error
}

// Moderate applies d to every id concurrently. Results keep the order of ids.
// done, if set, is called once per finished job.
func (c *Client) Moderate(ctx context.Context, ids []string, d Decision, done func()) []ModerationResult {
	results := make([]ModerationResult, len(ids))
	semaphore := make(chan struct{}, maxWorkers)
	var wg sync.WaitGroup

	for i, id := range ids {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() {
				<-semaphore
				if done != nil {
					done()
				}
			}()

			var err error
			switch d {
			case Reject:
				err = c.RejectJob(ctx, id)
			default:
				err = c.ApproveJob(ctx, id)
			}
			if err != nil {
				err = fmt.Errorf("%s %s: %w", d, id, err)
			}
			results[i] = ModerationResult{ID: id, Err: err}
		}(i, id)
	}

	wg.Wait()
	return results
}
