package events

import (
	"github.com/KirkDiggler/lockup/internal/models"
	"github.com/KirkDiggler/lockup/internal/repositories/counter"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func (s *DispatcherTestSuite) newSharedDispatcher(client *redis.Client) *dispatcher {
	store, err := counter.NewRedis(&counter.Config{RedisClient: client})
	s.Require().NoError(err)

	d, err := New(&Config{
		Transports:    []Transport{newRecordingTransport()},
		Clock:         s.mockClock,
		UUIDGenerator: s.mockUUID,
		BufferSize:    8,
		Counters:      store,
	})
	s.Require().NoError(err)
	return d
}

func (s *DispatcherTestSuite) TestRecordConfinementChange_TwoInstancesShareCounts() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	defer mr.Close()

	clientA := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer clientA.Close()
	clientB := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer clientB.Close()

	instanceA := s.newSharedDispatcher(clientA)
	instanceB := s.newSharedDispatcher(clientB)

	// A confines, B handles the early release
	s.Equal(int64(1), instanceA.RecordConfinementChange(s.ctx, &RecordConfinementChangeInput{
		Type:  models.ConfinementTypeHospital,
		Delta: 1,
	}))
	s.Equal(int64(0), instanceB.RecordConfinementChange(s.ctx, &RecordConfinementChangeInput{
		Type:  models.ConfinementTypeHospital,
		Delta: -1,
	}))

	s.Equal(int64(0), s.counts(instanceA)[models.ConfinementTypeHospital])
	s.Equal(int64(0), s.counts(instanceB)[models.ConfinementTypeHospital])
}

func (s *DispatcherTestSuite) TestSeedConfinementCounts_VisibleToOtherInstance() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	defer mr.Close()

	clientA := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer clientA.Close()
	clientB := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer clientB.Close()

	instanceA := s.newSharedDispatcher(clientA)
	instanceB := s.newSharedDispatcher(clientB)

	instanceA.SeedConfinementCounts(s.ctx, &SeedConfinementCountsInput{
		Counts: map[models.ConfinementType]int64{models.ConfinementTypeJail: 3},
	})

	s.Equal(int64(2), instanceB.RecordConfinementChange(s.ctx, &RecordConfinementChangeInput{
		Type:  models.ConfinementTypeJail,
		Delta: -1,
	}))
	s.Equal(int64(2), s.counts(instanceA)[models.ConfinementTypeJail])
}
