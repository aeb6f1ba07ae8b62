package cron

import (
	"log"
	"time"

	"github.com/MidhunThomas45/LMSv2024Project/internal/service"
)

type Service struct {
	membershipService *service.MembershipService
	stopChan          chan struct{}
}

func NewService(membershipService *service.MembershipService) *Service {
	return &Service{
		membershipService: membershipService,
		stopChan:          make(chan struct{}),
	}
}

// Start 启动定时任务
func (s *Service) Start() {
	go s.runDailyMembershipSweep()
	log.Println("Cron service started (membership expiry sweep)")
}

// Stop 停止定时任务
func (s *Service) Stop() {
	close(s.stopChan)
	log.Println("Cron service stopped")
}

// RunNow 立即执行一次到期清理，返回处理行数
func (s *Service) RunNow() (int64, error) {
	return s.membershipService.ExpireLapsed()
}

// runDailyMembershipSweep 每日会员到期清理任务
func (s *Service) runDailyMembershipSweep() {
	now := time.Now().UTC()
	nextMidnight := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, time.UTC)
	timer := time.NewTimer(nextMidnight.Sub(now))

	for {
		select {
		case <-s.stopChan:
			timer.Stop()
			return
		case <-timer.C:
			s.sweepExpiredMemberships()
			timer.Reset(24 * time.Hour)
		}
	}
}

// sweepExpiredMemberships 把到期未标记的会员记录置为 expired
func (s *Service) sweepExpiredMemberships() {
	log.Println("Starting membership expiry sweep...")
	n, err := s.membershipService.ExpireLapsed()
	if err != nil {
		log.Printf("Failed to sweep expired memberships: %v", err)
		return
	}
	log.Printf("Membership expiry sweep completed: %d expired", n)
}
