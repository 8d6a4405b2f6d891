package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"plastwarehouse/internal/common"
	"plastwarehouse/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPlasticsService struct {
	mock.Mock
}

func (m *MockPlasticsService) Search(ctx context.Context, surface string, filter models.PlasticSearchFilter) ([]models.Plastic, error) {
	args := m.Called(ctx, surface, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Plastic), args.Error(1)
}

func (m *MockPlasticsService) Add(ctx context.Context, plastic *models.NewPlastic) (int64, error) {
	args := m.Called(ctx, plastic)
	return args.Get(0).(int64), args.Error(1)
}

type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) ListMaterials(ctx context.Context) ([]*models.MaterialType, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.MaterialType), args.Error(1)
}

func (m *MockCatalogService) WarmCache(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, user *models.BotUser) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserService) List(ctx context.Context) ([]*models.BotUser, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.BotUser), args.Error(1)
}

type fixture struct {
	plastics *MockPlasticsService
	catalog  *MockCatalogService
	users    *MockUserService
	d        *Dispatcher
}

func newFixture() *fixture {
	f := &fixture{plastics: &MockPlasticsService{}, catalog: &MockCatalogService{}, users: &MockUserService{}}
	f.d = NewDispatcher(f.plastics, f.catalog, f.users)
	return f
}

// message builds an update the way the platform sends it: a leading
// "/command" carries a bot_command entity.
func message(text string) tgbotapi.Update {
	msg := &tgbotapi.Message{
		MessageID: 10,
		From:      &tgbotapi.User{ID: 555, FirstName: "Ivan", LastName: "Petrov"},
		Chat:      &tgbotapi.Chat{ID: 777, Type: "private"},
		Date:      int(time.Now().Unix()),
		Text:      text,
	}
	if strings.HasPrefix(text, "/") {
		name, _, _ := strings.Cut(text, " ")
		msg.Entities = []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(name)}}
	}
	return tgbotapi.Update{UpdateID: 1, Message: msg}
}

func TestParseCommand(t *testing.T) {
	cmd, err := ParseCommand(message(`/find@plast_bot Material=ABS comment="два слова" thickness_min=2`).Message)

	require.NoError(t, err)
	assert.Equal(t, "find", cmd.Name)
	assert.Equal(t, "ABS", cmd.Get("material"))
	assert.Equal(t, "два слова", cmd.Get("comment"))
	assert.Equal(t, "2", cmd.Get("thickness_min"))
	assert.Equal(t, "", cmd.Get("color"))
}

func TestParseCommand_Errors(t *testing.T) {
	_, err := ParseCommand(message("hello").Message)
	assert.ErrorIs(t, err, errNotCommand)

	// A slash without a command entity is plain text.
	_, err = ParseCommand(&tgbotapi.Message{Text: "/find", Chat: &tgbotapi.Chat{ID: 1}})
	assert.ErrorIs(t, err, errNotCommand)

	_, err = ParseCommand(message("/find ABS").Message)
	assert.ErrorContains(t, err, "key=value")

	_, err = ParseCommand(message(`/find comment="open`).Message)
	assert.ErrorContains(t, err, "unterminated quote")
}

func TestParseCommand_NoArguments(t *testing.T) {
	cmd, err := ParseCommand(message("/MATERIALS").Message)

	require.NoError(t, err)
	assert.Equal(t, "materials", cmd.Name)
	assert.Empty(t, cmd.Args)
}

func TestHandle_Start(t *testing.T) {
	f := newFixture()
	f.users.On("Register", mock.Anything, mock.MatchedBy(func(u *models.BotUser) bool {
		return u.TgID == 555 && *u.Username == "Ivan Petrov"
	})).Return(nil).Once()

	reply := f.d.Handle(context.Background(), message("/start"))

	require.NotNil(t, reply)
	assert.Equal(t, &Reply{Method: "sendMessage", ChatID: 777, Text: "Привет!"}, reply)
	f.users.AssertExpectations(t)
}

func TestHandle_StartGreetsEvenIfRegistrationFails(t *testing.T) {
	f := newFixture()
	f.users.On("Register", mock.Anything, mock.Anything).Return(common.ErrServiceUnavailable).Once()

	reply := f.d.Handle(context.Background(), message("/start"))

	assert.Equal(t, "Привет!", reply.Text)
}

func TestHandle_Find(t *testing.T) {
	f := newFixture()
	material := "ABS"
	f.plastics.On("Search", mock.Anything, "bot", mock.MatchedBy(func(filter models.PlasticSearchFilter) bool {
		return filter.Material == "ABS" && filter.ThicknessMin != nil && filter.ThicknessMin.String() == "2"
	})).Return([]models.Plastic{{ID: 3, Material: &material}}, nil).Once()

	reply := f.d.Handle(context.Background(), message("/find material=ABS thickness_min=2"))

	assert.Contains(t, reply.Text, "Материал: ABS")
	f.plastics.AssertExpectations(t)
}

func TestHandle_FindRejectsBadInput(t *testing.T) {
	f := newFixture()

	reply := f.d.Handle(context.Background(), message("/find thickness=abc"))
	assert.Contains(t, reply.Text, "Некорректный параметр")

	reply = f.d.Handle(context.Background(), message("/find size=2"))
	assert.Contains(t, reply.Text, "unknown parameter")

	f.plastics.AssertNotCalled(t, "Search", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandle_FindUnavailable(t *testing.T) {
	f := newFixture()
	f.plastics.On("Search", mock.Anything, "bot", mock.Anything).
		Return(nil, fmt.Errorf("fetch plastics: %w", common.ErrServiceUnavailable)).Once()

	reply := f.d.Handle(context.Background(), message("/find"))

	assert.Equal(t, unavailableText, reply.Text)
}

func TestHandle_Add(t *testing.T) {
	f := newFixture()
	f.plastics.On("Add", mock.Anything, mock.MatchedBy(func(p *models.NewPlastic) bool {
		return p.Article == "ABS-3" &&
			*p.Material == "ABS" &&
			p.Thickness.String() == "3.5" &&
			p.Width == nil &&
			*p.Comment == "с царапиной" &&
			*p.EmployeeID == 555 &&
			*p.EmployeeName == "Ivan Petrov" &&
			p.ArrivalAt.IsZero()
	})).Return(int64(42), nil).Once()

	reply := f.d.Handle(context.Background(), message(`/add article=ABS-3 material=ABS thickness=3,5 comment="с царапиной"`))

	assert.Equal(t, "Добавлено: ABS-3 (ID 42)", reply.Text)
	f.plastics.AssertExpectations(t)
}

func TestHandle_AddRequiresArticle(t *testing.T) {
	f := newFixture()

	reply := f.d.Handle(context.Background(), message("/add material=ABS"))

	assert.Contains(t, reply.Text, "Укажите артикул")
	f.plastics.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestHandle_AddFailure(t *testing.T) {
	f := newFixture()
	f.plastics.On("Add", mock.Anything, mock.Anything).
		Return(int64(0), &common.QueryError{Op: "insert plastic", Err: errors.New("boom")}).Once()

	reply := f.d.Handle(context.Background(), message("/add article=X"))

	assert.Equal(t, failureText, reply.Text)
}

func TestHandle_Materials(t *testing.T) {
	f := newFixture()
	f.catalog.On("ListMaterials", mock.Anything).Return([]*models.MaterialType{{Name: "PVC"}}, nil).Once()

	reply := f.d.Handle(context.Background(), message("/materials"))

	assert.Equal(t, "PVC", reply.Text)
}

func TestHandle_HelpAndIgnored(t *testing.T) {
	f := newFixture()

	assert.Equal(t, helpText, f.d.Handle(context.Background(), message("/unknown")).Text)
	assert.Equal(t, helpText, f.d.Handle(context.Background(), message("hello")).Text)
	assert.Nil(t, f.d.Handle(context.Background(), tgbotapi.Update{UpdateID: 2}))
	assert.Nil(t, f.d.Handle(context.Background(), message("   ")))
}
