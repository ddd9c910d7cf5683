package scheduler

import (
	"context"
	"time"

	"github.com/m04kA/SMC-DeliverySlotService/internal/domain"
)

// SlotPregenerator периодически материализует слоты скользящего окна дат
// в таблицу delivery_slots. Вставка идемпотентна (ON CONFLICT DO NOTHING),
// поэтому job безопасно перезапускать и выполнять конкурентно с трафиком.
// Blackout-даты не материализуются; прошедшие даты подчищаются
type SlotPregenerator struct {
	settings     SettingsProvider
	slotRepo     SlotRepository
	timeProvider TimeProvider
	horizonDays  int
	interval     time.Duration
	logger       Logger
}

// NewSlotPregenerator создает новый job предгенерации слотов
func NewSlotPregenerator(
	settings SettingsProvider,
	slotRepo SlotRepository,
	timeProvider TimeProvider,
	horizonDays int,
	interval time.Duration,
	logger Logger,
) *SlotPregenerator {
	return &SlotPregenerator{
		settings:     settings,
		slotRepo:     slotRepo,
		timeProvider: timeProvider,
		horizonDays:  horizonDays,
		interval:     interval,
		logger:       logger,
	}
}

// Run запускает цикл предгенерации до отмены контекста
// Первый проход выполняется сразу при старте
func (p *SlotPregenerator) Run(ctx context.Context) {
	p.logger.Info("SlotPregenerator: started, horizon=%d days, interval=%s", p.horizonDays, p.interval)

	p.runOnce(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("SlotPregenerator: stopped")
			return
		case <-ticker.C:
			p.runOnce(ctx)
		}
	}
}

// runOnce выполняет один проход предгенерации
func (p *SlotPregenerator) runOnce(ctx context.Context) {
	settings, err := p.settings.Get(ctx)
	if err != nil {
		p.logger.Error("SlotPregenerator: failed to get settings: %v", err)
		return
	}

	today := domain.DateOnly(p.timeProvider.Now())

	templates := make([]domain.SlotTemplate, 0, p.horizonDays*8)
	for i := 0; i <= p.horizonDays; i++ {
		date := today.AddDate(0, 0, i)
		if settings.IsBlackoutDate(date) {
			continue
		}
		templates = append(templates, domain.GenerateSlots(date, settings)...)
	}

	if err := p.slotRepo.UpsertTemplates(ctx, templates); err != nil {
		p.logger.Error("SlotPregenerator: failed to upsert %d templates: %v", len(templates), err)
		return
	}

	deleted, err := p.slotRepo.DeletePastDates(ctx, today)
	if err != nil {
		p.logger.Warn("SlotPregenerator: failed to delete past dates: %v", err)
	}

	p.logger.Info("SlotPregenerator: materialized %d templates, removed %d past rows",
		len(templates), deleted)
}
