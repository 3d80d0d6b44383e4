package events

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/KirkDiggler/lockup/internal/common/clock/mocks"
	uuidMocks "github.com/KirkDiggler/lockup/internal/common/uuid/mocks"
	"github.com/KirkDiggler/lockup/internal/models"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type sent struct {
	characterID string
	event       models.Event
}

// recordingTransport collects every delivery on a channel
type recordingTransport struct {
	out  chan sent
	fail bool
}

func newRecordingTransport() *recordingTransport {
	return &recordingTransport{out: make(chan sent, 64)}
}

func (t *recordingTransport) record(characterID string, message []byte) error {
	var event models.Event
	if err := json.Unmarshal(message, &event); err != nil {
		return err
	}
	t.out <- sent{characterID: characterID, event: event}
	if t.fail {
		return errors.New("socket closed")
	}
	return nil
}

func (t *recordingTransport) SendToCharacter(_ context.Context, characterID string, message []byte) error {
	return t.record(characterID, message)
}

func (t *recordingTransport) Broadcast(_ context.Context, message []byte) error {
	return t.record("", message)
}

type DispatcherTestSuite struct {
	suite.Suite
	mockCtrl  *gomock.Controller
	mockClock *mocks.MockClock
	mockUUID  *uuidMocks.MockUUID
	transport *recordingTransport
	ctx       context.Context
	cancel    context.CancelFunc
	testTime  time.Time
}

func (s *DispatcherTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockClock = mocks.NewMockClock(s.mockCtrl)
	s.mockUUID = uuidMocks.NewMockUUID(s.mockCtrl)
	s.transport = newRecordingTransport()
	s.ctx, s.cancel = context.WithCancel(context.Background())
	s.testTime = time.Date(2025, 4, 19, 12, 0, 0, 0, time.UTC)

	s.mockClock.EXPECT().Now().Return(s.testTime).AnyTimes()
	s.mockUUID.EXPECT().NewUUID().Return("event-id").AnyTimes()
}

func (s *DispatcherTestSuite) TearDownTest() {
	s.cancel()
	s.mockCtrl.Finish()
}

func TestDispatcherSuite(t *testing.T) {
	suite.Run(t, new(DispatcherTestSuite))
}

func (s *DispatcherTestSuite) newDispatcher(bufferSize int) *dispatcher {
	d, err := New(&Config{
		Transports:    []Transport{s.transport},
		Clock:         s.mockClock,
		UUIDGenerator: s.mockUUID,
		BufferSize:    bufferSize,
	})
	s.Require().NoError(err)
	return d
}

func (s *DispatcherTestSuite) next() sent {
	select {
	case msg := <-s.transport.out:
		return msg
	case <-time.After(time.Second):
		s.FailNow("no event delivered")
		return sent{}
	}
}

func (s *DispatcherTestSuite) counts(d *dispatcher) map[models.ConfinementType]int64 {
	counts, err := d.ConfinementCounts(s.ctx)
	s.Require().NoError(err)
	return counts
}

func (s *DispatcherTestSuite) TestNew_ValidatesConfig() {
	_, err := New(nil)
	s.ErrorIs(err, ErrNilConfig)

	_, err = New(&Config{Clock: s.mockClock, UUIDGenerator: s.mockUUID})
	s.ErrorIs(err, ErrNoTransports)

	_, err = New(&Config{Transports: []Transport{s.transport}, UUIDGenerator: s.mockUUID})
	s.ErrorIs(err, ErrNilClock)
}

func (s *DispatcherTestSuite) TestPublish_DeliversToCharacter() {
	d := s.newDispatcher(8)
	go d.Run(s.ctx)

	d.Publish(s.ctx, &PublishInput{
		CharacterID: "char-1",
		Kind:        models.EventKindAchievementUnlocked,
		Payload:     &models.AchievementUnlockedPayload{Key: "first_crime", XPReward: 50},
	})

	msg := s.next()
	s.Equal("char-1", msg.characterID)
	s.Equal(string(models.EventKindAchievementUnlocked), msg.event.Kind)
	s.Equal("event-id", msg.event.ID)
	s.True(s.testTime.Equal(msg.event.SentAt))

	payload, ok := msg.event.Payload.(map[string]any)
	s.Require().True(ok)
	s.Equal("first_crime", payload["key"])
}

func (s *DispatcherTestSuite) TestPublish_DropsWhenQueueFull() {
	d := s.newDispatcher(1)

	for i := 0; i < 3; i++ {
		d.Publish(s.ctx, &PublishInput{CharacterID: "char-1", Kind: models.EventKindCharacterUpdate})
	}

	s.Equal(int64(2), d.Dropped())
}

func (s *DispatcherTestSuite) TestPublish_TransportFailureIsSwallowed() {
	s.transport.fail = true
	d := s.newDispatcher(8)
	go d.Run(s.ctx)

	d.Publish(s.ctx, &PublishInput{CharacterID: "char-1", Kind: models.EventKindCharacterUpdate})
	d.Publish(s.ctx, &PublishInput{CharacterID: "char-2", Kind: models.EventKindCharacterUpdate})

	s.Equal("char-1", s.next().characterID)
	s.Equal("char-2", s.next().characterID)
}

func (s *DispatcherTestSuite) TestRecordConfinementChange_BroadcastsCount() {
	d := s.newDispatcher(8)
	go d.Run(s.ctx)

	count := d.RecordConfinementChange(s.ctx, &RecordConfinementChangeInput{
		Type:  models.ConfinementTypeJail,
		Delta: 1,
	})
	s.Equal(int64(1), count)

	msg := s.next()
	s.Empty(msg.characterID)
	s.Equal(string(models.AggregateTopicConfinementCount), msg.event.Kind)

	payload, ok := msg.event.Payload.(map[string]any)
	s.Require().True(ok)
	s.Equal("jail", payload["type"])
	s.Equal(float64(1), payload["count"])
}

func (s *DispatcherTestSuite) TestRecordConfinementChange_ConcurrentUpdates() {
	d := s.newDispatcher(4096)

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			d.RecordConfinementChange(s.ctx, &RecordConfinementChangeInput{Type: models.ConfinementTypeHospital, Delta: 1})
		}()
		go func() {
			defer wg.Done()
			d.RecordConfinementChange(s.ctx, &RecordConfinementChangeInput{Type: models.ConfinementTypeHospital, Delta: -1})
		}()
	}
	wg.Wait()

	s.Equal(int64(0), s.counts(d)[models.ConfinementTypeHospital])
}

func (s *DispatcherTestSuite) TestSeedConfinementCounts() {
	d := s.newDispatcher(8)

	d.SeedConfinementCounts(s.ctx, &SeedConfinementCountsInput{
		Counts: map[models.ConfinementType]int64{
			models.ConfinementTypeHospital: 4,
		},
	})

	counts := s.counts(d)
	s.Equal(int64(4), counts[models.ConfinementTypeHospital])
	s.Equal(int64(0), counts[models.ConfinementTypeJail])

	d.RecordConfinementChange(s.ctx, &RecordConfinementChangeInput{Type: models.ConfinementTypeHospital, Delta: -1})
	s.Equal(int64(3), s.counts(d)[models.ConfinementTypeHospital])
}

func (s *DispatcherTestSuite) TestRecordConfinementChange_UnknownType() {
	d := s.newDispatcher(8)

	s.Equal(int64(0), d.RecordConfinementChange(s.ctx, &RecordConfinementChangeInput{Type: models.ConfinementTypeNone, Delta: 1}))
}
