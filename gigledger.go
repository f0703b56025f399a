package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"gigflow.io/ledger/backup"
	eventsvc "gigflow.io/ledger/event"
	"gigflow.io/ledger/expense"
	"gigflow.io/ledger/gig"
	"gigflow.io/ledger/mileage"
	"gigflow.io/ledger/models"
	"gigflow.io/ledger/notification"
	"gigflow.io/ledger/receipt"
	"gigflow.io/ledger/reports"
	"gigflow.io/ledger/taxes"
	"gigflow.io/ledger/user"
)

var _ Ledger = (*GigLedger)(nil)

// GigLedger binds the entity services together and runs the background
// machinery: the NATS event bus, the notification worker pool, the distance
// cache sweep and the backup scheduler.
type GigLedger struct {
	natsConn        *nats.Conn
	eventManager    *EventManager
	dispatcher      *Dispatcher
	estimator       *mileage.Estimator
	backupJob       *backup.Job
	backupScheduler *backup.Scheduler
	sender          notification.Sender
	logger          *zap.Logger

	user    user.Service
	gig     gig.Service
	expense expense.Service
	mileage mileage.Service
	receipt receipt.Service
	reports reports.Service
	event   eventsvc.Service
}

func NewGigLedger(
	natsConn *nats.Conn,
	us user.Service,
	gs gig.Service,
	es expense.Service,
	ms mileage.Service,
	rs receipt.Service,
	reportSvc reports.Service,
	eventService eventsvc.Service,
	estimator *mileage.Estimator,
	backupJob *backup.Job,
	backupScheduler *backup.Scheduler,
	sender notification.Sender,
	logger *zap.Logger,
) Ledger {

	gl := &GigLedger{
		natsConn:        natsConn,
		estimator:       estimator,
		backupJob:       backupJob,
		backupScheduler: backupScheduler,
		sender:          sender,
		logger:          logger,
		user:            us,
		gig:             gs,
		expense:         es,
		mileage:         ms,
		receipt:         rs,
		reports:         reportSvc,
		event:           eventService,
	}

	gl.eventManager = NewEventManager(natsConn, logger)
	gl.dispatcher = NewDispatcher(10, 1000, gl)

	gl.registerEventHandlers()
	gl.dispatcher.Run()

	if err := gl.eventManager.SubscribeToEvents(gl.dispatcher); err != nil {
		logger.Error("failed to subscribe to events", zap.Error(err))
	}

	estimator.Start()

	backupScheduler.OnComplete = func(result *backup.Result) {
		gl.publish(EventTypeBackupCompleted, 0, result)
	}
	backupScheduler.Start()

	return gl
}

func (gl *GigLedger) registerEventHandlers() {

	eventHandlers := map[EventType]EventHandler{
		EventTypeGigCreated:      gl.handleGigEvent,
		EventTypeGigUpdated:      gl.handleGigEvent,
		EventTypeExpenseCreated:  gl.handleExpenseEvent,
		EventTypeBackupCompleted: gl.handleBackupEvent,
	}

	for eventType, handler := range eventHandlers {
		gl.eventManager.RegisterHandler(eventType, handler)
	}
}

func (gl *GigLedger) publish(eventType EventType, userID uint64, payload any) {

	raw, err := json.Marshal(payload)
	if err != nil {
		gl.logger.Error("failed to marshal event payload", zap.Error(err))
		return
	}

	event := &Event{
		Type:       eventType,
		UserID:     userID,
		Payload:    raw,
		OccurredAt: time.Now(),
	}

	if err = gl.eventManager.PublishEvent(event); err != nil {
		gl.logger.Error("failed to publish event",
			zap.Error(err),
			zap.String("event_type", string(eventType)))
	}
}

func (gl *GigLedger) processEvent(ctx context.Context, event *Event) error {

	// Audit first; a failed audit write is logged but does not block the
	// notification.
	if err := gl.event.Record(ctx, &models.Event{
		Type:        string(event.Type),
		UserID:      int64(event.UserID),
		Payload:     event.Payload,
		ProcessedAt: time.Now(),
	}); err != nil {
		gl.logger.Warn("failed to record event", zap.Error(err))
	}

	handler, exists := gl.eventManager.GetHandler(event.Type)
	if !exists {
		return fmt.Errorf("no handler registered for event type %s", event.Type)
	}

	return handler(ctx, event)
}

func (gl *GigLedger) handleGigEvent(ctx context.Context, event *Event) error {

	var g models.Gig
	if err := json.Unmarshal(event.Payload, &g); err != nil {
		return fmt.Errorf("failed to unmarshal gig payload: %w", err)
	}

	u, err := gl.user.GetByID(ctx, event.UserID)
	if err != nil {
		return fmt.Errorf("failed to load user for notification: %w", err)
	}

	data := map[string]any{
		"Name":     u.Name,
		"Platform": g.Platform,
		"Date":     g.GigDate.Format(time.DateOnly),
	}
	if g.ActualPay != nil {
		data["Pay"] = *g.ActualPay
	}

	subject, body, err := notification.Render(string(event.Type), data)
	if err != nil {
		return err
	}

	return gl.sender.Send(ctx, notification.Message{To: u.Email, Subject: subject, Body: body})
}

func (gl *GigLedger) handleExpenseEvent(ctx context.Context, event *Event) error {

	var e models.Expense
	if err := json.Unmarshal(event.Payload, &e); err != nil {
		return fmt.Errorf("failed to unmarshal expense payload: %w", err)
	}

	u, err := gl.user.GetByID(ctx, event.UserID)
	if err != nil {
		return fmt.Errorf("failed to load user for notification: %w", err)
	}

	subject, body, err := notification.Render(string(event.Type), map[string]any{
		"Name":     u.Name,
		"Amount":   e.Amount,
		"Category": string(e.Category),
	})
	if err != nil {
		return err
	}

	return gl.sender.Send(ctx, notification.Message{To: u.Email, Subject: subject, Body: body})
}

func (gl *GigLedger) handleBackupEvent(ctx context.Context, event *Event) error {

	var result backup.Result
	if err := json.Unmarshal(event.Payload, &result); err != nil {
		return fmt.Errorf("failed to unmarshal backup payload: %w", err)
	}

	gl.logger.Info("backup event",
		zap.String("archive", result.Archive),
		zap.Int("pruned", result.Pruned))
	return nil
}

func (gl *GigLedger) CreateUser(ctx context.Context, u *models.User) error {
	return gl.user.Create(ctx, u)
}

func (gl *GigLedger) GetUser(ctx context.Context, id uint64) (*models.User, error) {
	return gl.user.GetByID(ctx, id)
}

func (gl *GigLedger) UpdateUser(ctx context.Context, u *models.PartialUser) error {
	return gl.user.Update(ctx, u)
}

func (gl *GigLedger) CreateGig(ctx context.Context, g *models.Gig) error {

	// Fill in the drive distance up front so the dashboard has it
	// immediately; a heuristic value is fine here.
	if g.Miles == nil && g.OriginAddress != "" && g.DestinationAddress != "" {
		if res := gl.estimator.CalculateDistance(ctx, g.OriginAddress, g.DestinationAddress); res.Success {
			g.Miles = &res.Distance
		}
	}

	if err := gl.gig.Create(ctx, g); err != nil {
		return err
	}

	gl.publish(EventTypeGigCreated, uint64(g.UserID), g)
	return nil
}

func (gl *GigLedger) GetGig(ctx context.Context, id uint64) (*models.Gig, error) {
	return gl.gig.GetByID(ctx, id)
}

func (gl *GigLedger) UpdateGig(ctx context.Context, g *models.PartialGig) error {

	if err := gl.gig.Update(ctx, g); err != nil {
		return err
	}

	updated, err := gl.gig.GetByID(ctx, uint64(g.ID))
	if err != nil {
		return nil // update landed; the notification is best-effort
	}

	gl.publish(EventTypeGigUpdated, uint64(updated.UserID), updated)
	return nil
}

func (gl *GigLedger) DeleteGig(ctx context.Context, id uint64) error {
	return gl.gig.Delete(ctx, id)
}

func (gl *GigLedger) ListGigs(ctx context.Context, userID uint64, limit, offset uint64) ([]*models.Gig, error) {
	return gl.gig.List(ctx, userID, limit, offset)
}

func (gl *GigLedger) CreateExpense(ctx context.Context, e *models.Expense) error {

	if err := gl.expense.Create(ctx, e); err != nil {
		return err
	}

	gl.publish(EventTypeExpenseCreated, uint64(e.UserID), e)
	return nil
}

func (gl *GigLedger) GetExpense(ctx context.Context, id uint64) (*models.Expense, error) {
	return gl.expense.GetByID(ctx, id)
}

func (gl *GigLedger) UpdateExpense(ctx context.Context, e *models.PartialExpense) error {
	return gl.expense.Update(ctx, e)
}

func (gl *GigLedger) DeleteExpense(ctx context.Context, id uint64) error {
	return gl.expense.Delete(ctx, id)
}

func (gl *GigLedger) ListExpenses(ctx context.Context, userID uint64, limit, offset uint64) ([]*models.Expense, error) {
	return gl.expense.List(ctx, userID, limit, offset)
}

func (gl *GigLedger) CalculateDistance(ctx context.Context, origin, destination string) mileage.Result {
	return gl.mileage.CalculateDistance(ctx, origin, destination)
}

func (gl *GigLedger) CreateMileageLog(ctx context.Context, log *models.MileageLog) error {
	return gl.mileage.CreateLog(ctx, log)
}

func (gl *GigLedger) ListMileageLogs(ctx context.Context, userID uint64, limit, offset uint64) ([]*models.MileageLog, error) {
	return gl.mileage.ListLogs(ctx, userID, limit, offset)
}

func (gl *GigLedger) DeleteMileageLog(ctx context.Context, id uint64) error {
	return gl.mileage.DeleteLog(ctx, id)
}

func (gl *GigLedger) UploadReceipt(ctx context.Context, userID uint64, fileName, contentType, base64Data string) (*models.Receipt, error) {
	return gl.receipt.Upload(ctx, userID, fileName, contentType, base64Data)
}

func (gl *GigLedger) GetReceipt(ctx context.Context, id uint64) (*models.Receipt, error) {
	return gl.receipt.GetByID(ctx, id)
}

func (gl *GigLedger) DeleteReceipt(ctx context.Context, id uint64) error {
	return gl.receipt.Delete(ctx, id)
}

func (gl *GigLedger) DashboardSummary(ctx context.Context, userID uint64, from, to time.Time) (*models.DashboardSummary, error) {
	return gl.reports.DashboardSummary(ctx, userID, from, to)
}

func (gl *GigLedger) TaxEstimate(ctx context.Context, userID uint64, from, to time.Time) (*taxes.Estimate, error) {
	return gl.reports.TaxEstimate(ctx, userID, from, to)
}

func (gl *GigLedger) RunBackup(ctx context.Context) (*backup.Result, error) {

	result, err := gl.backupJob.Run(ctx)
	if err != nil {
		return nil, err
	}

	gl.publish(EventTypeBackupCompleted, 0, result)
	return result, nil
}

func (gl *GigLedger) Close() {

	gl.backupScheduler.Stop()
	gl.estimator.Stop()
	gl.dispatcher.Stop()

	if gl.natsConn != nil {
		gl.natsConn.Close()
	}
}
