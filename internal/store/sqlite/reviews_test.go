package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/yamdb/yamdb-server/internal/domain"
	"github.com/yamdb/yamdb-server/internal/store"
)

func TestReview_UniquePerAuthorAndTitle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	title := mustCreateTitle(t, s, store.TitleWrite{Name: "Ulysses", Year: 1922})
	u := mustCreateUser(t, s, "reader", domain.RoleUser)

	if err := s.CreateReview(ctx, &domain.Review{TitleID: title.ID, AuthorID: u.ID, Text: "long", Score: 6}); err != nil {
		t.Fatalf("CreateReview: %v", err)
	}

	has, err := s.HasReview(ctx, title.ID, u.ID)
	if err != nil || !has {
		t.Fatalf("HasReview = %v, %v; want true", has, err)
	}

	err = s.CreateReview(ctx, &domain.Review{TitleID: title.ID, AuthorID: u.ID, Text: "again", Score: 7})
	if !errors.Is(err, store.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}

	list, err := s.ListReviews(ctx, title.ID, store.Page{})
	if err != nil {
		t.Fatalf("ListReviews: %v", err)
	}
	if list.Count != 1 {
		t.Errorf("expected exactly one review, got %d", list.Count)
	}
}

func TestReview_ScoreCheck(t *testing.T) {
	s := newTestStore(t)
	title := mustCreateTitle(t, s, store.TitleWrite{Name: "Ulysses", Year: 1922})
	u := mustCreateUser(t, s, "reader", domain.RoleUser)

	for _, score := range []int{0, 11} {
		err := s.CreateReview(context.Background(), &domain.Review{TitleID: title.ID, AuthorID: u.ID, Text: "x", Score: score})
		if err == nil {
			t.Errorf("expected CHECK failure for score %d", score)
		}
	}
}

func TestReview_ScopedToTitle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	one := mustCreateTitle(t, s, store.TitleWrite{Name: "One", Year: 2001})
	two := mustCreateTitle(t, s, store.TitleWrite{Name: "Two", Year: 2002})
	u := mustCreateUser(t, s, "reader", domain.RoleUser)

	r := &domain.Review{TitleID: one.ID, AuthorID: u.ID, Text: "fine", Score: 5}
	if err := s.CreateReview(ctx, r); err != nil {
		t.Fatalf("CreateReview: %v", err)
	}

	got, err := s.GetReview(ctx, one.ID, r.ID)
	if err != nil {
		t.Fatalf("GetReview: %v", err)
	}
	if got.AuthorUsername != "reader" || got.Score != 5 {
		t.Errorf("unexpected review: %+v", got)
	}

	if _, err := s.GetReview(ctx, two.ID, r.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound through the wrong title, got %v", err)
	}
	if err := s.DeleteReview(ctx, two.ID, r.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound deleting through the wrong title, got %v", err)
	}
}

func TestReview_UpdateKeepsPubDate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	title := mustCreateTitle(t, s, store.TitleWrite{Name: "Dubliners", Year: 1914})
	u := mustCreateUser(t, s, "reader", domain.RoleUser)

	r := &domain.Review{TitleID: title.ID, AuthorID: u.ID, Text: "short", Score: 5}
	if err := s.CreateReview(ctx, r); err != nil {
		t.Fatalf("CreateReview: %v", err)
	}
	original, err := s.GetReview(ctx, title.ID, r.ID)
	if err != nil {
		t.Fatalf("GetReview: %v", err)
	}

	r.Text = "short and sharp"
	r.Score = 8
	r.PubDate = time.Now().Add(time.Hour)
	if err := s.UpdateReview(ctx, r); err != nil {
		t.Fatalf("UpdateReview: %v", err)
	}

	got, err := s.GetReview(ctx, title.ID, r.ID)
	if err != nil {
		t.Fatalf("GetReview: %v", err)
	}
	if got.Text != "short and sharp" || got.Score != 8 {
		t.Errorf("update not persisted: %+v", got)
	}
	if !got.PubDate.Equal(original.PubDate) {
		t.Errorf("pub_date changed from %v to %v", original.PubDate, got.PubDate)
	}
}

func TestListReviews_NewestFirst(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	title := mustCreateTitle(t, s, store.TitleWrite{Name: "Emma", Year: 1815})
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	for i, name := range []string{"first", "second", "third"} {
		u := mustCreateUser(t, s, name, domain.RoleUser)
		r := &domain.Review{TitleID: title.ID, AuthorID: u.ID, Text: name, Score: 5, PubDate: base.Add(time.Duration(i) * time.Minute)}
		if err := s.CreateReview(ctx, r); err != nil {
			t.Fatalf("CreateReview: %v", err)
		}
	}

	list, err := s.ListReviews(ctx, title.ID, store.Page{Limit: 2, Offset: 1})
	if err != nil {
		t.Fatalf("ListReviews: %v", err)
	}
	if list.Count != 3 || len(list.Items) != 2 {
		t.Fatalf("expected 2 of 3, got %d of %d", len(list.Items), list.Count)
	}
	if list.Items[0].Text != "second" || list.Items[1].Text != "first" {
		t.Errorf("unexpected order: %s, %s", list.Items[0].Text, list.Items[1].Text)
	}
}

func TestComments(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	title := mustCreateTitle(t, s, store.TitleWrite{Name: "Persuasion", Year: 1817})
	author := mustCreateUser(t, s, "author", domain.RoleUser)
	commenter := mustCreateUser(t, s, "commenter", domain.RoleUser)

	r := &domain.Review{TitleID: title.ID, AuthorID: author.ID, Text: "quiet", Score: 7}
	if err := s.CreateReview(ctx, r); err != nil {
		t.Fatalf("CreateReview: %v", err)
	}

	c := &domain.Comment{ReviewID: r.ID, AuthorID: commenter.ID, Text: "agreed"}
	if err := s.CreateComment(ctx, c); err != nil {
		t.Fatalf("CreateComment: %v", err)
	}

	got, err := s.GetComment(ctx, r.ID, c.ID)
	if err != nil {
		t.Fatalf("GetComment: %v", err)
	}
	if got.AuthorUsername != "commenter" || got.Text != "agreed" {
		t.Errorf("unexpected comment: %+v", got)
	}

	c.Text = "strongly agreed"
	if err := s.UpdateComment(ctx, c); err != nil {
		t.Fatalf("UpdateComment: %v", err)
	}

	list, err := s.ListComments(ctx, r.ID, store.Page{})
	if err != nil {
		t.Fatalf("ListComments: %v", err)
	}
	if list.Count != 1 || list.Items[0].Text != "strongly agreed" {
		t.Errorf("unexpected comments: %+v", list.Items)
	}

	// Deleting the commenter removes their comments.
	if err := s.DeleteUser(ctx, commenter.ID); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}
	if _, err := s.GetComment(ctx, r.ID, c.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected comment gone with its author, got %v", err)
	}
}
