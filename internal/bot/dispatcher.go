package bot

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"plastwarehouse/internal/common"
	"plastwarehouse/internal/logger"
	"plastwarehouse/internal/models"
	"plastwarehouse/internal/query"
	"plastwarehouse/internal/render"
	"plastwarehouse/internal/services"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const (
	greeting        = "Привет!"
	unavailableText = "База данных недоступна, попробуйте позже."
	failureText     = "Не удалось выполнить запрос."
	helpText        = `Команды:
/find material=ABS thickness_min=2 - поиск (article, material, color, warehouse, thickness, thickness_min, thickness_max)
/add article=ABS-3 material=ABS thickness=3 color=белый length=3000 width=1500 warehouse=A-1 comment="..." - приход
/materials - справочник материалов`
)

// addParams are the columns /add accepts besides the sender fields.
var addParams = map[string]bool{
	"article": true, "material": true, "thickness": true, "color": true,
	"length": true, "width": true, "warehouse": true, "comment": true,
}

// Dispatcher routes commands to services and renders the replies.
type Dispatcher struct {
	plastics services.PlasticsService
	catalog  services.CatalogService
	users    services.UserService
}

func NewDispatcher(plastics services.PlasticsService, catalog services.CatalogService, users services.UserService) *Dispatcher {
	return &Dispatcher{plastics: plastics, catalog: catalog, users: users}
}

// Handle answers one update. Updates without message text get a nil reply.
func (d *Dispatcher) Handle(ctx context.Context, upd tgbotapi.Update) *Reply {
	msg := upd.Message
	if msg == nil || msg.Chat == nil || strings.TrimSpace(msg.Text) == "" {
		return nil
	}

	log := logger.FromContext(ctx).With(zap.Int64("chat_id", msg.Chat.ID), zap.Int("update_id", upd.UpdateID))
	ctx = logger.WithLogger(ctx, log)

	cmd, err := ParseCommand(msg)
	if errors.Is(err, errNotCommand) {
		return sendMessage(msg.Chat.ID, helpText)
	}
	if err != nil {
		return sendMessage(msg.Chat.ID, "Ошибка в команде: "+err.Error())
	}

	log.Debug("bot command", zap.String("command", cmd.Name))

	var text string
	switch cmd.Name {
	case "start":
		text, err = d.start(ctx, msg)
	case "find":
		text, err = d.find(ctx, cmd)
	case "add":
		text, err = d.add(ctx, msg, cmd)
	case "materials":
		text, err = d.materials(ctx)
	default:
		text = helpText
	}
	if err != nil {
		text = errorText(err)
		log.Warn("bot command failed", zap.String("command", cmd.Name), zap.Error(err))
	}
	return sendMessage(msg.Chat.ID, text)
}

func errorText(err error) string {
	switch {
	case errors.Is(err, common.ErrServiceUnavailable):
		return unavailableText
	case errors.Is(err, common.ErrInvalidCriteria):
		return "Некорректный параметр: " + err.Error()
	default:
		return failureText
	}
}

// start greets the user and registers the sender. Registration failures
// do not block the greeting.
func (d *Dispatcher) start(ctx context.Context, msg *tgbotapi.Message) (string, error) {
	if msg.From != nil {
		user := &models.BotUser{TgID: msg.From.ID}
		if name := displayName(msg.From); name != "" {
			user.Username = &name
		}
		if err := d.users.Register(ctx, user); err != nil {
			logger.FromContext(ctx).Warn("register bot user failed", zap.Error(err))
		}
	}
	return greeting, nil
}

func (d *Dispatcher) find(ctx context.Context, cmd Command) (string, error) {
	for key := range cmd.Args {
		if !slices.Contains(query.FilterParams, key) {
			return "", fmt.Errorf("%w: unknown parameter %q", common.ErrInvalidCriteria, key)
		}
	}

	filter, err := query.ParseFilter(cmd.Get)
	if err != nil {
		return "", err
	}
	records, err := d.plastics.Search(ctx, services.SurfaceBot, filter)
	if err != nil {
		return "", err
	}
	return render.PlasticsReply(records), nil
}

func (d *Dispatcher) add(ctx context.Context, msg *tgbotapi.Message, cmd Command) (string, error) {
	for key := range cmd.Args {
		if !addParams[key] {
			return "", fmt.Errorf("%w: unknown parameter %q", common.ErrInvalidCriteria, key)
		}
	}

	article := strings.TrimSpace(cmd.Get("article"))
	if article == "" {
		return "Укажите артикул: /add article=...", nil
	}

	plastic := &models.NewPlastic{
		Article:   article,
		Material:  optional(cmd.Get("material")),
		Color:     optional(cmd.Get("color")),
		Warehouse: optional(cmd.Get("warehouse")),
		Comment:   optional(cmd.Get("comment")),
	}

	var err error
	if plastic.Thickness, err = query.ParseDecimal("thickness", cmd.Get("thickness")); err != nil {
		return "", err
	}
	if plastic.Length, err = query.ParseDecimal("length", cmd.Get("length")); err != nil {
		return "", err
	}
	if plastic.Width, err = query.ParseDecimal("width", cmd.Get("width")); err != nil {
		return "", err
	}

	if msg.From != nil {
		id := msg.From.ID
		plastic.EmployeeID = &id
		plastic.EmployeeName = optional(displayName(msg.From))
	}

	id, err := d.plastics.Add(ctx, plastic)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Добавлено: %s (ID %d)", article, id), nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func (d *Dispatcher) materials(ctx context.Context) (string, error) {
	materials, err := d.catalog.ListMaterials(ctx)
	if err != nil {
		return "", err
	}
	return render.MaterialsReply(materials), nil
}
