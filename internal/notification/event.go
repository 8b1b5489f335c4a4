package notification

import (
	"time"

	"github.com/google/uuid"
)

// Kind is the interaction that triggered a notification.
type Kind string

const (
	KindLike    Kind = "like"
	KindComment Kind = "comment"
	KindFollow  Kind = "follow"
	KindShare   Kind = "share"
)

// Event is an interaction that already committed. Only the fields relevant to
// Kind are set.
type Event struct {
	ID           uuid.UUID
	Kind         Kind
	ActorID      uint
	ArticleID    uint
	TargetUserID uint
	CommentID    uint
	CommentText  string
	EnqueuedAt   time.Time
}

func newEvent(kind Kind, actorID uint) Event {
	return Event{ID: uuid.New(), Kind: kind, ActorID: actorID, EnqueuedAt: time.Now()}
}

func LikeEvent(articleID, likerID uint) Event {
	ev := newEvent(KindLike, likerID)
	ev.ArticleID = articleID
	return ev
}

func CommentEvent(articleID, commenterID, commentID uint, text string) Event {
	ev := newEvent(KindComment, commenterID)
	ev.ArticleID = articleID
	ev.CommentID = commentID
	ev.CommentText = text
	return ev
}

func FollowEvent(followerID, followedID uint) Event {
	ev := newEvent(KindFollow, followerID)
	ev.TargetUserID = followedID
	return ev
}

func ShareEvent(articleID, sharerID uint) Event {
	ev := newEvent(KindShare, sharerID)
	ev.ArticleID = articleID
	return ev
}
