package models

// FollowResult is the outcome of a follow attempt.
type FollowResult int

const (
	FollowCreated FollowResult = iota
	FollowAlreadyFollowing
	FollowSelfReference
)

func (r FollowResult) String() string {
	switch r {
	case FollowCreated:
		return "created"
	case FollowAlreadyFollowing:
		return "already_following"
	case FollowSelfReference:
		return "self_reference"
	}
	return "unknown"
}

type BlockResult int

const (
	BlockCreated BlockResult = iota
	BlockAlreadyBlocked
	BlockSelfReference
)

func (r BlockResult) String() string {
	switch r {
	case BlockCreated:
		return "created"
	case BlockAlreadyBlocked:
		return "already_blocked"
	case BlockSelfReference:
		return "self_reference"
	}
	return "unknown"
}

type LikeResult int

const (
	Liked LikeResult = iota
	Unliked
)

func (r LikeResult) String() string {
	if r == Liked {
		return "liked"
	}
	return "unliked"
}

// DeleteResult is the outcome of an owner-or-admin deletion.
type DeleteResult int

const (
	Deleted DeleteResult = iota
	DeleteNotFound
	DeleteForbidden
)

func (r DeleteResult) String() string {
	switch r {
	case Deleted:
		return "deleted"
	case DeleteNotFound:
		return "not_found"
	case DeleteForbidden:
		return "forbidden"
	}
	return "unknown"
}
