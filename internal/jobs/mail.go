package jobs

import (
	"context"
	"fmt"

	"github.com/olenak/lingocards/internal/mailer"
	"github.com/olenak/lingocards/internal/worker"
)

// shareInvitationJob delivers one share invitation email.
type shareInvitationJob struct {
	mailer         mailer.Mailer
	toEmail        string
	collectionName string
	inviteLink     string
}

func (j *shareInvitationJob) Name() string {
	return fmt.Sprintf("share-invitation:%s", j.toEmail)
}

func (j *shareInvitationJob) Run(ctx context.Context) error {
	return j.mailer.SendShareInvitation(ctx, j.toEmail, j.collectionName, j.inviteLink)
}

// WorkerQueue submits jobs to a worker.Pool.
type WorkerQueue struct {
	pool   *worker.Pool
	mailer mailer.Mailer
}

func NewWorkerQueue(pool *worker.Pool, m mailer.Mailer) *WorkerQueue {
	return &WorkerQueue{pool: pool, mailer: m}
}

func (q *WorkerQueue) EnqueueShareInvitation(toEmail, collectionName, inviteLink string) error {
	return q.pool.Submit(&shareInvitationJob{
		mailer:         q.mailer,
		toEmail:        toEmail,
		collectionName: collectionName,
		inviteLink:     inviteLink,
	})
}
