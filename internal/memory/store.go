// Package memory implements forum.Store over plain maps. It backs the
// forum package's tests and local development without a database.
// Transactions take a snapshot of the dataset and restore it when the
// transaction function fails, so rollback behavior can be exercised the
// same way the postgres adapter exercises it.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/askhub/askhub/internal/forum"
	"github.com/askhub/askhub/internal/models"
)

type voteKey struct {
	userID int
	target models.Target
}

type dataset struct {
	questions map[int]models.Question
	answers   map[int]models.Answer
	votes     map[voteKey]models.Vote
	comments  map[int]models.Comment
	topics    map[int]models.Topic
	notifs    map[int]models.Notification
	nextID    int
}

func newDataset() dataset {
	return dataset{
		questions: map[int]models.Question{},
		answers:   map[int]models.Answer{},
		votes:     map[voteKey]models.Vote{},
		comments:  map[int]models.Comment{},
		topics:    map[int]models.Topic{},
		notifs:    map[int]models.Notification{},
		nextID:    1,
	}
}

func (d dataset) clone() dataset {
	c := dataset{
		questions: make(map[int]models.Question, len(d.questions)),
		answers:   make(map[int]models.Answer, len(d.answers)),
		votes:     make(map[voteKey]models.Vote, len(d.votes)),
		comments:  make(map[int]models.Comment, len(d.comments)),
		topics:    make(map[int]models.Topic, len(d.topics)),
		notifs:    make(map[int]models.Notification, len(d.notifs)),
		nextID:    d.nextID,
	}
	for k, v := range d.questions {
		c.questions[k] = v
	}
	for k, v := range d.answers {
		c.answers[k] = v
	}
	for k, v := range d.votes {
		c.votes[k] = v
	}
	for k, v := range d.comments {
		c.comments[k] = v
	}
	for k, v := range d.topics {
		c.topics[k] = v
	}
	for k, v := range d.notifs {
		c.notifs[k] = v
	}
	return c
}

func (d *dataset) id() int {
	id := d.nextID
	d.nextID++
	return id
}

type Store struct {
	mu       sync.Mutex
	d        dataset
	failures map[string]error
}

func NewStore() *Store {
	return &Store{
		d:        newDataset(),
		failures: map[string]error{},
	}
}

// FailNext makes the next call of the named operation (e.g.
// "questions.adjust_vote_count") return err. Consumed once.
func (s *Store) FailNext(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[op] = err
}

func (s *Store) takeFailure(op string) error {
	if err, ok := s.failures[op]; ok {
		delete(s.failures, op)
		return err
	}
	return nil
}

func (s *Store) Questions() forum.QuestionStore { return questions{view{s, true}} }
func (s *Store) Answers() forum.AnswerStore     { return answers{view{s, true}} }
func (s *Store) Votes() forum.VoteStore         { return votes{view{s, true}} }
func (s *Store) Comments() forum.CommentStore   { return comments{view{s, true}} }
func (s *Store) Topics() forum.TopicStore       { return topics{view{s, true}} }
func (s *Store) Notifications() forum.NotificationStore {
	return notifications{view{s, true}}
}

// Tx holds the store lock for the whole transaction, which serializes
// transactions the way row locks do in postgres, and restores the
// pre-transaction snapshot when fn fails.
func (s *Store) Tx(ctx context.Context, fn func(forum.Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := s.d.clone()
	if err := fn(txStore{s}); err != nil {
		s.d = snapshot
		return err
	}
	return nil
}

// txStore is the in-transaction face of Store: same data, no locking
// (the transaction already holds the lock), nested Tx joins the outer one.
type txStore struct {
	st *Store
}

func (t txStore) Questions() forum.QuestionStore { return questions{view{t.st, false}} }
func (t txStore) Answers() forum.AnswerStore     { return answers{view{t.st, false}} }
func (t txStore) Votes() forum.VoteStore         { return votes{view{t.st, false}} }
func (t txStore) Comments() forum.CommentStore   { return comments{view{t.st, false}} }
func (t txStore) Topics() forum.TopicStore       { return topics{view{t.st, false}} }
func (t txStore) Notifications() forum.NotificationStore {
	return notifications{view{t.st, false}}
}

func (t txStore) Tx(ctx context.Context, fn func(forum.Store) error) error {
	return fn(t)
}

type view struct {
	st   *Store
	lock bool
}

func (v view) enter() func() {
	if v.lock {
		v.st.mu.Lock()
		return v.st.mu.Unlock
	}
	return func() {}
}

type questions struct{ view }

func (s questions) Get(ctx context.Context, id int) (*models.Question, error) {
	defer s.enter()()
	if err := s.st.takeFailure("questions.get"); err != nil {
		return nil, err
	}
	q, ok := s.st.d.questions[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &q, nil
}

func (s questions) Insert(ctx context.Context, q *models.Question) error {
	defer s.enter()()
	if err := s.st.takeFailure("questions.insert"); err != nil {
		return err
	}
	q.ID = s.st.d.id()
	s.st.d.questions[q.ID] = *q
	return nil
}

func (s questions) SetStatus(ctx context.Context, id int, status string) error {
	defer s.enter()()
	if err := s.st.takeFailure("questions.set_status"); err != nil {
		return err
	}
	q, ok := s.st.d.questions[id]
	if !ok {
		return models.ErrNotFound
	}
	q.Status = status
	s.st.d.questions[id] = q
	return nil
}

func (s questions) AdjustVoteCount(ctx context.Context, id, delta int) (int, error) {
	defer s.enter()()
	if err := s.st.takeFailure("questions.adjust_vote_count"); err != nil {
		return 0, err
	}
	q, ok := s.st.d.questions[id]
	if !ok {
		return 0, models.ErrNotFound
	}
	q.VoteCount += delta
	s.st.d.questions[id] = q
	return q.VoteCount, nil
}

func (s questions) AdjustAnswerCount(ctx context.Context, id, delta int) error {
	defer s.enter()()
	if err := s.st.takeFailure("questions.adjust_answer_count"); err != nil {
		return err
	}
	q, ok := s.st.d.questions[id]
	if !ok {
		return models.ErrNotFound
	}
	q.AnswerCount += delta
	s.st.d.questions[id] = q
	return nil
}

func (s questions) IncrementViewCount(ctx context.Context, id int) error {
	defer s.enter()()
	if err := s.st.takeFailure("questions.increment_view_count"); err != nil {
		return err
	}
	q, ok := s.st.d.questions[id]
	if !ok {
		return models.ErrNotFound
	}
	q.ViewCount++
	s.st.d.questions[id] = q
	return nil
}

func (s questions) ListRecent(ctx context.Context, limit, offset int) ([]models.Question, error) {
	defer s.enter()()
	all := make([]models.Question, 0, len(s.st.d.questions))
	for _, q := range s.st.d.questions {
		all = append(all, q)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	return page(all, limit, offset), nil
}

func (s questions) Search(ctx context.Context, query string, limit, offset int) ([]models.Question, error) {
	defer s.enter()()
	var hits []models.Question
	for _, q := range s.st.d.questions {
		if containsFold(q.Title, query) || containsFold(q.Content, query) {
			hits = append(hits, q)
		}
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].ID > hits[j].ID })
	return page(hits, limit, offset), nil
}

type answers struct{ view }

func (s answers) Get(ctx context.Context, id int) (*models.Answer, error) {
	defer s.enter()()
	if err := s.st.takeFailure("answers.get"); err != nil {
		return nil, err
	}
	a, ok := s.st.d.answers[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &a, nil
}

func (s answers) Insert(ctx context.Context, a *models.Answer) error {
	defer s.enter()()
	if err := s.st.takeFailure("answers.insert"); err != nil {
		return err
	}
	a.ID = s.st.d.id()
	s.st.d.answers[a.ID] = *a
	return nil
}

func (s answers) ListByQuestion(ctx context.Context, questionID int) ([]models.Answer, error) {
	defer s.enter()()
	var out []models.Answer
	for _, a := range s.st.d.answers {
		if a.QuestionID == questionID {
			out = append(out, a)
		}
	}
	// Accepted first, then best voted, then oldest.
	sort.Slice(out, func(i, j int) bool {
		if out[i].IsAccepted != out[j].IsAccepted {
			return out[i].IsAccepted
		}
		if out[i].VoteCount != out[j].VoteCount {
			return out[i].VoteCount > out[j].VoteCount
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s answers) SetAccepted(ctx context.Context, id int, accepted bool) error {
	defer s.enter()()
	if err := s.st.takeFailure("answers.set_accepted"); err != nil {
		return err
	}
	a, ok := s.st.d.answers[id]
	if !ok {
		return models.ErrNotFound
	}
	a.IsAccepted = accepted
	s.st.d.answers[id] = a
	return nil
}

func (s answers) ClearAccepted(ctx context.Context, questionID int) error {
	defer s.enter()()
	if err := s.st.takeFailure("answers.clear_accepted"); err != nil {
		return err
	}
	for id, a := range s.st.d.answers {
		if a.QuestionID == questionID && a.IsAccepted {
			a.IsAccepted = false
			s.st.d.answers[id] = a
		}
	}
	return nil
}

func (s answers) AdjustVoteCount(ctx context.Context, id, delta int) (int, error) {
	defer s.enter()()
	if err := s.st.takeFailure("answers.adjust_vote_count"); err != nil {
		return 0, err
	}
	a, ok := s.st.d.answers[id]
	if !ok {
		return 0, models.ErrNotFound
	}
	a.VoteCount += delta
	s.st.d.answers[id] = a
	return a.VoteCount, nil
}

func (s answers) UpdateContent(ctx context.Context, id int, content string) error {
	defer s.enter()()
	if err := s.st.takeFailure("answers.update_content"); err != nil {
		return err
	}
	a, ok := s.st.d.answers[id]
	if !ok {
		return models.ErrNotFound
	}
	a.Content = content
	s.st.d.answers[id] = a
	return nil
}

func (s answers) Delete(ctx context.Context, id int) error {
	defer s.enter()()
	if err := s.st.takeFailure("answers.delete"); err != nil {
		return err
	}
	if _, ok := s.st.d.answers[id]; !ok {
		return models.ErrNotFound
	}
	delete(s.st.d.answers, id)
	return nil
}

type votes struct{ view }

func (s votes) Find(ctx context.Context, userID int, target models.Target) (*models.Vote, error) {
	defer s.enter()()
	if err := s.st.takeFailure("votes.find"); err != nil {
		return nil, err
	}
	v, ok := s.st.d.votes[voteKey{userID, target}]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &v, nil
}

func (s votes) Insert(ctx context.Context, v *models.Vote) error {
	defer s.enter()()
	if err := s.st.takeFailure("votes.insert"); err != nil {
		return err
	}
	s.st.d.votes[voteKey{v.UserID, v.Target}] = *v
	return nil
}

func (s votes) UpdatePolarity(ctx context.Context, userID int, target models.Target, p models.Polarity) error {
	defer s.enter()()
	if err := s.st.takeFailure("votes.update_polarity"); err != nil {
		return err
	}
	k := voteKey{userID, target}
	v, ok := s.st.d.votes[k]
	if !ok {
		return models.ErrNotFound
	}
	v.Polarity = p
	s.st.d.votes[k] = v
	return nil
}

func (s votes) Delete(ctx context.Context, userID int, target models.Target) error {
	defer s.enter()()
	if err := s.st.takeFailure("votes.delete"); err != nil {
		return err
	}
	k := voteKey{userID, target}
	if _, ok := s.st.d.votes[k]; !ok {
		return models.ErrNotFound
	}
	delete(s.st.d.votes, k)
	return nil
}

func (s votes) SumByTarget(ctx context.Context, target models.Target) (int, error) {
	defer s.enter()()
	if err := s.st.takeFailure("votes.sum_by_target"); err != nil {
		return 0, err
	}
	sum := 0
	for k, v := range s.st.d.votes {
		if k.target == target {
			sum += v.Polarity.Delta()
		}
	}
	return sum, nil
}

type comments struct{ view }

func (s comments) Insert(ctx context.Context, c *models.Comment) error {
	defer s.enter()()
	if err := s.st.takeFailure("comments.insert"); err != nil {
		return err
	}
	c.ID = s.st.d.id()
	s.st.d.comments[c.ID] = *c
	return nil
}

func (s comments) ListByTarget(ctx context.Context, target models.Target) ([]models.Comment, error) {
	defer s.enter()()
	var out []models.Comment
	for _, c := range s.st.d.comments {
		if c.Target == target {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type topics struct{ view }

func (s topics) Insert(ctx context.Context, t *models.Topic) error {
	defer s.enter()()
	if err := s.st.takeFailure("topics.insert"); err != nil {
		return err
	}
	t.ID = s.st.d.id()
	s.st.d.topics[t.ID] = *t
	return nil
}

func (s topics) List(ctx context.Context) ([]models.Topic, error) {
	defer s.enter()()
	out := make([]models.Topic, 0, len(s.st.d.topics))
	for _, t := range s.st.d.topics {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type notifications struct{ view }

func (s notifications) Insert(ctx context.Context, n *models.Notification) error {
	defer s.enter()()
	if err := s.st.takeFailure("notifications.insert"); err != nil {
		return err
	}
	n.ID = s.st.d.id()
	s.st.d.notifs[n.ID] = *n
	return nil
}

func (s notifications) ListByUser(ctx context.Context, userID, limit int) ([]models.Notification, error) {
	defer s.enter()()
	var out []models.Notification
	for _, n := range s.st.d.notifs {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s notifications) CountUnread(ctx context.Context, userID int) (int, error) {
	defer s.enter()()
	count := 0
	for _, n := range s.st.d.notifs {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (s notifications) MarkRead(ctx context.Context, id, userID int) error {
	defer s.enter()()
	if err := s.st.takeFailure("notifications.mark_read"); err != nil {
		return err
	}
	n, ok := s.st.d.notifs[id]
	if !ok || n.UserID != userID {
		return models.ErrNotFound
	}
	n.IsRead = true
	s.st.d.notifs[id] = n
	return nil
}

func (s notifications) MarkAllRead(ctx context.Context, userID int) error {
	defer s.enter()()
	for id, n := range s.st.d.notifs {
		if n.UserID == userID && !n.IsRead {
			n.IsRead = true
			s.st.d.notifs[id] = n
		}
	}
	return nil
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}
