package relay

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ardzk/smmpanel/internal/errs"
	"github.com/ardzk/smmpanel/internal/model"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// DepositResolver is the same resolve operation the admin HTTP path
// uses; the relay is only a second thin adapter in front of it.
type DepositResolver interface {
	ResolveDepositRequest(ctx context.Context, id int64, action model.DepositAction, note string, actorID *int) (model.DepositRequest, error)
}

// botAPI is the slice of *tgbotapi.BotAPI the relay actually uses.
type botAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Relay long-polls Telegram for approval callbacks and pushes new
// deposit requests to the admin chat.
type Relay struct {
	bot     botAPI
	chatID  int64
	storage DepositResolver
	logger  *zap.SugaredLogger
}

func New(token string, chatID int64, storage DepositResolver, logger *zap.SugaredLogger) (*Relay, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram bot init: %w", err)
	}

	return &Relay{bot: bot, chatID: chatID, storage: storage, logger: logger}, nil
}

// CallbackToken encodes a deposit approval action as opaque callback
// data: deposit:<id>:APPROVE|REJECT.
func CallbackToken(depositID int64, action model.DepositAction) string {
	return fmt.Sprintf("deposit:%d:%s", depositID, action)
}

func ParseCallback(data string) (int64, model.DepositAction, error) {
	parts := strings.Split(data, ":")
	if len(parts) != 3 || parts[0] != "deposit" {
		return 0, "", fmt.Errorf("unknown callback token: %q", data)
	}

	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return 0, "", fmt.Errorf("bad deposit id in callback token: %q", data)
	}

	action := model.DepositAction(parts[2])
	if action != model.DepositApprove && action != model.DepositReject {
		return 0, "", fmt.Errorf("bad action in callback token: %q", data)
	}

	return id, action, nil
}

// NotifyDepositRequest posts a new request to the admin chat with
// approve/reject buttons. Called fire-and-forget: a failure here never
// fails the request itself.
func (r *Relay) NotifyDepositRequest(dep model.DepositRequest) error {
	text := fmt.Sprintf("Новая заявка на пополнение #%d\nСумма: %d\nОтправитель: %s", dep.ID, dep.Amount, dep.DepositorName)
	if dep.Memo != "" {
		text += "\nКомментарий: " + dep.Memo
	}

	msg := tgbotapi.NewMessage(r.chatID, text)
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Подтвердить", CallbackToken(dep.ID, model.DepositApprove)),
			tgbotapi.NewInlineKeyboardButtonData("❌ Отклонить", CallbackToken(dep.ID, model.DepositReject)),
		),
	)

	if _, err := r.bot.Send(msg); err != nil {
		return fmt.Errorf("%w: %v", errs.ErrUpstreamFailure, err)
	}

	return nil
}

func (r *Relay) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := r.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			r.bot.StopReceivingUpdates()
			return
		case update := <-updates:
			if update.CallbackQuery == nil {
				continue
			}
			r.handleCallback(ctx, update.CallbackQuery)
		}
	}
}

func (r *Relay) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	id, action, err := ParseCallback(cb.Data)
	if err != nil {
		r.answer(cb.ID, "Неизвестное действие")
		return
	}

	// actorID nil — решение пришло через бот, а не от админа в консоли
	dep, err := r.storage.ResolveDepositRequest(ctx, id, action, "resolved via telegram", nil)
	switch {
	case errors.Is(err, errs.ErrAlreadyProcessed):
		r.answer(cb.ID, fmt.Sprintf("Заявка #%d уже обработана (%s)", id, dep.Status))
	case errors.Is(err, errs.ErrNotFound):
		r.answer(cb.ID, fmt.Sprintf("Заявка #%d не найдена", id))
	case err != nil:
		r.logger.Errorw("resolve deposit via telegram", "deposit", id, "error", err)
		r.answer(cb.ID, "Ошибка, попробуйте ещё раз")
	default:
		r.answer(cb.ID, fmt.Sprintf("Заявка #%d: %s", id, dep.Status))
		if cb.Message != nil {
			// убираем кнопки под обработанной заявкой
			edit := tgbotapi.NewEditMessageText(cb.Message.Chat.ID, cb.Message.MessageID,
				cb.Message.Text+fmt.Sprintf("\n\nСтатус: %s", dep.Status))
			if _, err := r.bot.Send(edit); err != nil {
				r.logger.Warnw("edit telegram message", "error", err)
			}
		}
	}
}

func (r *Relay) answer(callbackID, text string) {
	if _, err := r.bot.Request(tgbotapi.NewCallback(callbackID, text)); err != nil {
		r.logger.Warnw("answer telegram callback", "error", err)
	}
}
