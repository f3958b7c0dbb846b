package jobs

// Queue provides an abstraction for enqueueing background jobs
type Queue interface {
	EnqueueShareInvitation(toEmail, collectionName, inviteLink string) error
}
