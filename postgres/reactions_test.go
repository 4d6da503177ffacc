package postgres

import "testing"

func TestCounterDeltas(t *testing.T) {
	tests := []struct {
		name         string
		old, new     string
		wantLikes    int
		wantDislikes int
	}{
		{name: "NoneToLike", old: "", new: statusLike, wantLikes: 1},
		{name: "NoneToDislike", old: "", new: statusDislike, wantDislikes: 1},
		{name: "LikeToNone", old: statusLike, new: "", wantLikes: -1},
		{name: "DislikeToNone", old: statusDislike, new: "", wantDislikes: -1},
		{name: "LikeToDislike", old: statusLike, new: statusDislike, wantLikes: -1, wantDislikes: 1},
		{name: "DislikeToLike", old: statusDislike, new: statusLike, wantLikes: 1, wantDislikes: -1},
		{name: "LikeToLike", old: statusLike, new: statusLike},
		{name: "DislikeToDislike", old: statusDislike, new: statusDislike},
		{name: "NoneToNone", old: "", new: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			likes, dislikes := counterDeltas(tt.old, tt.new)
			if likes != tt.wantLikes || dislikes != tt.wantDislikes {
				t.Errorf("counterDeltas(%q, %q) = %d, %d, want %d, %d",
					tt.old, tt.new, likes, dislikes, tt.wantLikes, tt.wantDislikes)
			}
		})
	}
}

// A Like then Dislike then None round trip must cancel out, with exactly
// one counter set at each intermediate step.
func TestCounterDeltas_RoundTrip(t *testing.T) {
	var likesCount, dislikesCount int
	apply := func(old, new string) {
		l, d := counterDeltas(old, new)
		likesCount += l
		dislikesCount += d
	}

	apply("", statusLike)
	if likesCount != 1 || dislikesCount != 0 {
		t.Fatalf("After Like: got (%d, %d), want (1, 0)", likesCount, dislikesCount)
	}
	apply(statusLike, statusDislike)
	if likesCount != 0 || dislikesCount != 1 {
		t.Fatalf("After Dislike: got (%d, %d), want (0, 1)", likesCount, dislikesCount)
	}
	apply(statusDislike, "")
	if likesCount != 0 || dislikesCount != 0 {
		t.Fatalf("After None: got (%d, %d), want (0, 0)", likesCount, dislikesCount)
	}
}
