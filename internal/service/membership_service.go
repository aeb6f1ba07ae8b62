package service

import (
	"context"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/MidhunThomas45/LMSv2024Project/config"
	"github.com/MidhunThomas45/LMSv2024Project/internal/model"
	"github.com/MidhunThomas45/LMSv2024Project/internal/model/dto"
	"github.com/MidhunThomas45/LMSv2024Project/internal/pkg/pubsub"
	"github.com/MidhunThomas45/LMSv2024Project/internal/repository"
)

var (
	ErrMembershipNotFound    = errors.New("会员套餐不存在")
	ErrMembershipNameInvalid = errors.New("套餐名称只能是 GOLD、PLATINUM 或 DIAMOND")
	ErrMembershipNameExists  = errors.New("套餐名称已存在")
	ErrMembershipInUse       = errors.New("套餐正被活跃会员引用，不能修改或删除")
	ErrNoMembership          = errors.New("暂无会员")
	ErrInvalidPaymentMethod  = errors.New("不支持的支付方式")
)

// MembershipService 套餐维护与订阅；每用户只保留一条会员记录，重复订阅整体覆盖
type MembershipService struct {
	membershipRepo *repository.MembershipRepository
	paymentRepo    *repository.PaymentRepository
	publisher      *pubsub.Publisher
	access         *AccessService
	cfg            *config.Config
}

func NewMembershipService(
	membershipRepo *repository.MembershipRepository,
	paymentRepo *repository.PaymentRepository,
	publisher *pubsub.Publisher,
	access *AccessService,
	cfg *config.Config,
) *MembershipService {
	return &MembershipService{
		membershipRepo: membershipRepo,
		paymentRepo:    paymentRepo,
		publisher:      publisher,
		access:         access,
		cfg:            cfg,
	}
}

// ---------- 套餐（馆员） ----------

func (s *MembershipService) CreatePlan(req *dto.CreateMembershipRequest) (*dto.MembershipPlan, error) {
	if !model.MembershipNames[req.Name] {
		return nil, ErrMembershipNameInvalid
	}

	exists, err := s.membershipRepo.ExistsByName(req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrMembershipNameExists
	}

	membership := &model.Membership{
		Name:                 req.Name,
		PricePerMonth:        req.PricePerMonth,
		BookAccessPercentage: req.BookAccessPercentage,
	}
	if err := s.membershipRepo.Create(membership); err != nil {
		return nil, err
	}

	return buildMembershipPlan(membership), nil
}

// UpdatePlan 被活跃会员引用的套餐不可改，保证已售会员条款不变
func (s *MembershipService) UpdatePlan(id int64, req *dto.UpdateMembershipRequest) (*dto.MembershipPlan, error) {
	membership, err := s.membershipRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMembershipNotFound
		}
		return nil, err
	}

	count, err := s.membershipRepo.CountActiveReferences(id, time.Now())
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrMembershipInUse
	}

	if req.PricePerMonth != nil {
		membership.PricePerMonth = *req.PricePerMonth
	}
	if req.BookAccessPercentage != nil {
		membership.BookAccessPercentage = *req.BookAccessPercentage
	}

	if err := s.membershipRepo.Update(membership); err != nil {
		return nil, err
	}
	return buildMembershipPlan(membership), nil
}

func (s *MembershipService) DeletePlan(id int64) error {
	if _, err := s.membershipRepo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMembershipNotFound
		}
		return err
	}

	count, err := s.membershipRepo.CountActiveReferences(id, time.Now())
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrMembershipInUse
	}

	return s.membershipRepo.Delete(id)
}

func (s *MembershipService) ListPlans() ([]*dto.MembershipPlan, error) {
	memberships, err := s.membershipRepo.List()
	if err != nil {
		return nil, err
	}

	plans := make([]*dto.MembershipPlan, 0, len(memberships))
	for _, m := range memberships {
		plans = append(plans, buildMembershipPlan(m))
	}
	return plans, nil
}

// ---------- 订阅（学生） ----------

// Subscribe 付款成功后以 user_id 为键覆盖写入会员记录，有效期从当前时刻重新起算
func (s *MembershipService) Subscribe(userID, membershipID int64, paymentMethod string) (*dto.MembershipInfo, error) {
	if !model.ValidPaymentMethod(paymentMethod) {
		return nil, ErrInvalidPaymentMethod
	}

	plan, err := s.membershipRepo.GetByID(membershipID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMembershipNotFound
		}
		return nil, err
	}

	now := time.Now()
	payment := &model.Payment{
		UserID:        userID,
		Amount:        plan.PricePerMonth,
		PaymentDate:   now,
		PaymentType:   model.PaymentTypeMembership,
		PaymentMethod: paymentMethod,
	}
	if err := s.paymentRepo.Create(payment); err != nil {
		return nil, err
	}

	endDate := now.AddDate(0, 0, s.cfg.Membership.DurationDays)

	um, err := s.membershipRepo.GetByUserID(userID)
	switch {
	case err == nil:
		um.MembershipID = plan.ID
		um.Membership = plan
		um.StartDate = now
		um.EndDate = endDate
		um.Status = model.UserMembershipActive
		um.PaymentID = &payment.ID
		if err := s.membershipRepo.UpdateUserMembership(um); err != nil {
			return nil, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		um = &model.UserMembership{
			UserID:       userID,
			MembershipID: plan.ID,
			Membership:   plan,
			StartDate:    now,
			EndDate:      endDate,
			Status:       model.UserMembershipActive,
			PaymentID:    &payment.ID,
		}
		if err := s.membershipRepo.CreateUserMembership(um); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	s.access.InvalidateUser(context.Background(), userID)
	s.publishPayment(payment)
	log.Printf("membership subscribed: user=%d plan=%s until=%s",
		userID, plan.Name, endDate.Format(dateLayout))

	return buildMembershipInfo(um, now), nil
}

// GetCurrent 用户当前会员，已过期的记录照常返回并标记 expired
func (s *MembershipService) GetCurrent(userID int64) (*dto.MembershipInfo, error) {
	um, err := s.membershipRepo.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoMembership
		}
		return nil, err
	}
	return buildMembershipInfo(um, time.Now()), nil
}

// ExpireLapsed 把到期未标记的记录置为 expired，由定时任务调用
func (s *MembershipService) ExpireLapsed() (int64, error) {
	return s.membershipRepo.MarkExpired(time.Now())
}

func (s *MembershipService) publishPayment(payment *model.Payment) {
	if s.publisher == nil {
		return
	}

	err := s.publisher.PublishPayment(context.Background(), &pubsub.PaymentMessage{
		UserID:        payment.UserID,
		PaymentID:     payment.ID,
		PaymentType:   payment.PaymentType,
		PaymentMethod: payment.PaymentMethod,
		Amount:        payment.Amount,
	})
	if err != nil {
		log.Printf("failed to publish payment event: %v", err)
	}
}

func buildMembershipPlan(m *model.Membership) *dto.MembershipPlan {
	return &dto.MembershipPlan{
		ID:                   m.ID,
		Name:                 m.Name,
		PricePerMonth:        m.PricePerMonth,
		BookAccessPercentage: m.BookAccessPercentage,
	}
}

// buildMembershipInfo 过期判定以传入时刻为准，status 字段可能先于后台任务变为 expired
func buildMembershipInfo(um *model.UserMembership, now time.Time) *dto.MembershipInfo {
	info := &dto.MembershipInfo{
		StartDate: um.StartDate.Format(dateLayout),
		EndDate:   um.EndDate.Format(dateLayout),
		Status:    um.Status,
		PaymentID: um.PaymentID,
	}

	if um.Membership != nil {
		info.Plan = um.Membership.Name
		info.BookAccessPercentage = um.Membership.BookAccessPercentage
		info.PricePerMonth = um.Membership.PricePerMonth
	}

	if !um.IsActive(now) {
		info.Status = model.UserMembershipExpired
		info.RemainingDays = 0
		return info
	}

	info.RemainingDays = int(um.EndDate.Sub(now).Hours() / 24)
	return info
}
