package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	app "waterseg-bot/internal/application"
	"waterseg-bot/internal/domain/entity"
)

const (
	msgStart = `👋 Привет! Я бот для поиска воды на спутниковых снимках.

🛰 Отправьте мне многоканальный снимок Sentinel-2 (GeoTIFF, не меньше 12 каналов) файлом, и я покажу, где вода.

📋 Команды:
/check — начать проверку снимка
/help — справка
/cancel — отменить текущую операцию`

	msgHelp = `ℹ️ Как пользоваться ботом:

1️⃣ Отправьте /check
2️⃣ Пришлите снимок как документ (не как фото)
3️⃣ Вы получите картинку: RGB, подсветка воды, маска и разметка, если она есть

💡 Рекомендации:
• Каналы должны идти в порядке Sentinel-2
• Имя файла используется для поиска разметки

📋 Команды:
/check — начать проверку
/cancel — отменить операцию`

	msgAwaitingRaster  = "🛰 Пришлите снимок файлом (GeoTIFF)."
	msgCancelled       = "❌ Операция отменена. Отправьте /check для новой проверки."
	msgSendRaster      = "🛰 Отправьте /check, а затем снимок файлом."
	msgSendAsDocument  = "📎 Фото сжимается Telegram. Пришлите снимок как документ."
	msgUnknownCommand  = "❓ Неизвестная команда. Используйте /help для справки."
	msgProcessing      = "⏳ Обрабатываю снимок..."
	msgBadRaster       = "⚠️ Не удалось прочитать снимок. Проверьте, что это GeoTIFF."
	msgModelMismatch   = "⚠️ Модель вернула результат неожиданной формы. Сообщите администратору."
	msgProcessingError = "⚠️ Не удалось обработать снимок. Попробуйте ещё раз."
)

const defaultRasterName = "scene.tif"

// Bot представляет Telegram-бота
type Bot struct {
	api          *tgbotapi.BotAPI
	users        *app.UserService
	segmentation *app.SegmentationService
	log          zerolog.Logger
}

// NewBot создаёт нового бота
func NewBot(token string, users *app.UserService, segmentation *app.SegmentationService, log zerolog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	log = log.With().Str("component", "bot").Logger()
	log.Info().Str("account", api.Self.UserName).Msg("authorized")

	return &Bot{
		api:          api,
		users:        users,
		segmentation: segmentation,
		log:          log,
	}, nil
}

// Run запускает основной цикл обработки сообщений до отмены ctx
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	defer b.api.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}
			b.handleMessage(ctx, update.Message)
		}
	}
}

// handleMessage обрабатывает входящее сообщение
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	user, err := b.users.Get(ctx, msg.From.ID, msg.Chat.ID)
	if err != nil {
		b.log.Error().Err(err).Int64("user_id", msg.From.ID).Msg("get user")
		return
	}

	switch {
	case msg.IsCommand():
		b.handleCommand(ctx, msg)
	case msg.Document != nil:
		b.handleDocument(ctx, msg, user)
	case len(msg.Photo) > 0:
		b.sendMessage(msg.Chat.ID, msgSendAsDocument)
	default:
		b.sendMessage(msg.Chat.ID, msgSendRaster)
	}
}

// handleCommand обрабатывает команды бота
func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	var err error
	switch msg.Command() {
	case "start":
		_, err = b.users.Cancel(ctx, msg.From.ID, msg.Chat.ID)
		b.sendMessage(msg.Chat.ID, msgStart)

	case "help":
		b.sendMessage(msg.Chat.ID, msgHelp)

	case "check":
		_, err = b.users.BeginUpload(ctx, msg.From.ID, msg.Chat.ID)
		b.sendMessage(msg.Chat.ID, msgAwaitingRaster)

	case "cancel":
		_, err = b.users.Cancel(ctx, msg.From.ID, msg.Chat.ID)
		b.sendMessage(msg.Chat.ID, msgCancelled)

	default:
		b.sendMessage(msg.Chat.ID, msgUnknownCommand)
	}
	if err != nil {
		b.log.Error().Err(err).Str("command", msg.Command()).Msg("update user state")
	}
}

// handleDocument скачивает снимок и прогоняет его через конвейер
func (b *Bot) handleDocument(ctx context.Context, msg *tgbotapi.Message, user *entity.User) {
	if !user.CanUpload() {
		b.sendMessage(msg.Chat.ID, msgSendRaster)
		return
	}
	b.sendMessage(msg.Chat.ID, msgProcessing)

	dir, err := os.MkdirTemp("", "waterseg-*")
	if err != nil {
		b.log.Error().Err(err).Msg("create temp dir")
		b.sendMessage(msg.Chat.ID, msgProcessingError)
		return
	}
	defer os.RemoveAll(dir)

	// Имя файла сохраняем: по нему ищется разметка.
	path := filepath.Join(dir, rasterFileName(msg.Document.FileName))
	if err := b.downloadFile(ctx, msg.Document.FileID, path); err != nil {
		b.log.Error().Err(err).Str("file", msg.Document.FileName).Msg("download raster")
		b.sendMessage(msg.Chat.ID, msgProcessingError)
		if _, err := b.users.Cancel(ctx, msg.From.ID, msg.Chat.ID); err != nil {
			b.log.Error().Err(err).Msg("reset user state")
		}
		return
	}

	result, err := b.segmentation.ProcessForUser(ctx, msg.From.ID, msg.Chat.ID, path)
	if err != nil {
		b.log.Error().Err(err).Str("file", msg.Document.FileName).Msg("segmentation failed")
		b.sendMessage(msg.Chat.ID, errorMessage(err))
		return
	}

	photo := tgbotapi.NewPhoto(msg.Chat.ID, tgbotapi.FileBytes{Name: "segmentation.png", Bytes: result.PNG})
	photo.Caption = resultCaption(result)
	if _, err := b.api.Send(photo); err != nil {
		b.log.Error().Err(err).Msg("send composite")
	}
}

// downloadFile скачивает файл из Telegram в path
func (b *Bot) downloadFile(ctx context.Context, fileID, path string) error {
	file, err := b.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return fmt.Errorf("get file: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, file.Link(b.api.Token), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download file: status %s", resp.Status)
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		return fmt.Errorf("write file: %w", err)
	}
	return out.Close()
}

// sendMessage отправляет текстовое сообщение
func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		b.log.Error().Err(err).Int64("chat_id", chatID).Msg("send message")
	}
}

// rasterFileName оставляет от имени документа только базовое имя
func rasterFileName(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, `\`, "/"))
	if name == "." || name == "/" || name == "" {
		return defaultRasterName
	}
	return name
}

// errorMessage подбирает текст для пользователя по типу ошибки
func errorMessage(err error) string {
	var (
		readErr  *entity.RasterReadError
		bandErr  *entity.BandIndexError
		shapeErr *entity.ShapeMismatchError
	)
	switch {
	case errors.As(err, &bandErr):
		return fmt.Sprintf("⚠️ В снимке %d каналов, нужно не меньше %d.", bandErr.Available, bandErr.Required)
	case errors.As(err, &readErr):
		return msgBadRaster
	case errors.As(err, &shapeErr):
		return msgModelMismatch
	default:
		return msgProcessingError
	}
}

// resultCaption подпись к картинке с долей воды и метриками
func resultCaption(result *entity.Composite) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "💧 Вода: %.1f%% снимка", result.Mask.Fraction()*100)
	if m := result.Metrics; m != nil {
		fmt.Fprintf(&sb, "\n📐 IoU: %.3f, F1: %.3f", m.IoU, m.F1)
	}
	return sb.String()
}
