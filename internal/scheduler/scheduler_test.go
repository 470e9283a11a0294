package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/rs/zerolog"
)

func noop(ctx context.Context) error { return nil }

var _ = Describe("Scheduler", func() {
	It("rejects invalid schedules and timezones", func() {
		_, err := NewScheduler("every day", "UTC", noop, zerolog.Nop())
		Expect(err).To(MatchError(ContainSubstring("failed to parse schedule")))

		_, err = NewScheduler("@daily", "Mars/Olympus", noop, zerolog.Nop())
		Expect(err).To(MatchError(ContainSubstring("failed to load timezone")))
	})

	It("computes the next run in the configured timezone", func() {
		s, err := NewScheduler("0 9 31 12 *", "Europe/Warsaw", noop, zerolog.Nop())
		Expect(err).NotTo(HaveOccurred())

		next := s.NextRun(time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC))
		Expect(next.Year()).To(Equal(2024))
		Expect(next.Month()).To(Equal(time.December))
		Expect(next.Day()).To(Equal(31))
		Expect(next.Hour()).To(Equal(9))
		Expect(next.Location().String()).To(Equal("Europe/Warsaw"))
	})

	It("recovers from a panicking job", func() {
		s, err := NewScheduler("@daily", "UTC", func(ctx context.Context) error {
			panic("boom")
		}, zerolog.Nop())
		Expect(err).NotTo(HaveOccurred())

		Expect(func() { s.runJob(context.Background()) }).NotTo(Panic())
	})

	It("logs and survives a failing job", func() {
		var calls int32
		s, err := NewScheduler("@daily", "UTC", func(ctx context.Context) error {
			atomic.AddInt32(&calls, 1)
			return errors.New("export missing")
		}, zerolog.Nop())
		Expect(err).NotTo(HaveOccurred())

		s.runJob(context.Background())
		Expect(atomic.LoadInt32(&calls)).To(Equal(int32(1)))
	})

	It("runs the job on schedule until cancelled", func() {
		var calls int32
		s, err := NewScheduler("@every 1s", "UTC", func(ctx context.Context) error {
			atomic.AddInt32(&calls, 1)
			return nil
		}, zerolog.Nop())
		Expect(err).NotTo(HaveOccurred())

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() {
			done <- s.Start(ctx)
		}()

		Eventually(func() int32 { return atomic.LoadInt32(&calls) }, 5*time.Second, 50*time.Millisecond).
			Should(BeNumerically(">=", 1))

		cancel()
		Eventually(done, 5*time.Second).Should(Receive(MatchError(context.Canceled)))
	})
})
