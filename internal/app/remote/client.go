// Package remote — клиент удалённого хранилища снапшотов. Обе коллекции
// уходят одним снапшотом в одну запись на аккаунт; запись не привязана к
// устройству, поэтому восстановление после переустановки возможно с
// любого устройства, вошедшего в тот же аккаунт.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"QuickMemo/internal/app/model"
)

// Client — HTTP-клиент сервиса бэкапов.
type Client struct {
	serverURL  string
	tokens     TokenFile
	deviceID   string
	appVersion string
	http       *http.Client
	log        *zap.SugaredLogger
}

func NewClient(serverURL string, tokens TokenFile, deviceID, appVersion string, log *zap.SugaredLogger) *Client {
	return &Client{
		serverURL:  serverURL,
		tokens:     tokens,
		deviceID:   deviceID,
		appVersion: appVersion,
		http:       http.DefaultClient,
		log:        log,
	}
}

func (c *Client) do(ctx context.Context, method, path string, payload any) (*http.Response, []byte, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, nil, err
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.serverURL+path, body)
	if err != nil {
		return nil, nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token, err := c.tokens.Load(); err == nil && token != "" {
		req.Header.Set("Cookie", "auth_token="+token)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, failure(ReasonNetwork, err.Error())
	}
	defer func() { _ = resp.Body.Close() }()
	respBody, _ := io.ReadAll(resp.Body)
	return resp, respBody, nil
}

// persistAuth извлекает auth cookie из ответа и сохраняет её в файл.
func (c *Client) persistAuth(resp *http.Response) error {
	for _, ck := range resp.Cookies() {
		if ck.Name == "auth_token" && ck.Value != "" {
			return c.tokens.Save(ck.Value)
		}
	}
	return fmt.Errorf("no auth cookie in response")
}

// Register регистрирует аккаунт и сохраняет auth-токен.
func (c *Client) Register(ctx context.Context, login, password string) error {
	return c.auth(ctx, "/api/user/register", login, password)
}

// Login входит в существующий аккаунт и сохраняет auth-токен.
func (c *Client) Login(ctx context.Context, login, password string) error {
	return c.auth(ctx, "/api/user/login", login, password)
}

func (c *Client) auth(ctx context.Context, path, login, password string) error {
	resp, body, err := c.do(ctx, http.MethodPost, path, map[string]string{
		"login": login, "password": password,
	})
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return classifyStatus(resp.StatusCode, string(body))
	}
	return c.persistAuth(resp)
}

// AccountAvailable проверяет, пригоден ли удалённый аккаунт: токен есть и
// сервис его принимает. Отличается от отказа операции: это предусловие,
// проверяемое до сетевых вызовов push/pull.
func (c *Client) AccountAvailable(ctx context.Context) bool {
	return c.accountStatus(ctx) == nil
}

func (c *Client) accountStatus(ctx context.Context) error {
	if _, err := c.tokens.Load(); err != nil {
		return failure(ReasonNotAuthenticated, "no stored token")
	}
	resp, body, err := c.do(ctx, http.MethodGet, "/api/account/status", nil)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return classifyStatus(resp.StatusCode, string(body))
	}
	return nil
}

// Push сериализует обе коллекции и выполняет upsert единственной записи
// аккаунта. Повторный push безопасен: запись заменяется целиком.
func (c *Client) Push(ctx context.Context, memos []model.Memo, cats []model.Category) error {
	if err := c.accountStatus(ctx); err != nil {
		return err
	}

	memosData, err := model.EncodeMemos(memos)
	if err != nil {
		return err
	}
	catsData, err := model.EncodeCategories(cats)
	if err != nil {
		return err
	}
	snap := model.Snapshot{
		DeviceID:        c.deviceID,
		MemosData:       memosData,
		CategoriesData:  catsData,
		MemosCount:      len(memos),
		CategoriesCount: len(cats),
		LastBackupDate:  model.Now(),
		AppVersion:      c.appVersion,
	}

	resp, body, err := c.do(ctx, http.MethodPut, "/api/backup", snap)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return classifyStatus(resp.StatusCode, string(body))
	}
	c.log.Infow("backup pushed", "memos", len(memos), "categories", len(cats))
	return nil
}

// Pull загружает снапшот аккаунта. Отсутствие снапшота — ErrNotFound,
// отличимый от отказов транспорта и авторизации.
func (c *Client) Pull(ctx context.Context) ([]model.Memo, []model.Category, error) {
	if err := c.accountStatus(ctx); err != nil {
		return nil, nil, err
	}

	resp, body, err := c.do(ctx, http.MethodGet, "/api/backup", nil)
	if err != nil {
		return nil, nil, err
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, nil, classifyStatus(resp.StatusCode, string(body))
	}

	var snap model.Snapshot
	if err := json.Unmarshal(body, &snap); err != nil {
		return nil, nil, failure(ReasonOther, err.Error())
	}

	var memos []model.Memo
	if len(snap.MemosData) > 0 {
		// даты внутри блоба декодируются с запасной стратегией ISO-8601:
		// снапшот мог быть записан версией с другой конвенцией
		memos, err = model.DecodeMemos(snap.MemosData)
		if err != nil {
			return nil, nil, failure(ReasonOther, err.Error())
		}
	}
	var cats []model.Category
	if len(snap.CategoriesData) > 0 {
		cats, err = model.DecodeCategories(snap.CategoriesData)
		if err != nil {
			return nil, nil, failure(ReasonOther, err.Error())
		}
	}
	c.log.Infow("backup pulled",
		"memos", len(memos), "categories", len(cats),
		"device", snap.DeviceID, "appVersion", snap.AppVersion)
	return memos, cats, nil
}

// PushSubscription сохраняет статус покупки в записи аккаунта.
func (c *Client) PushSubscription(ctx context.Context, st model.SubscriptionStatus) error {
	if err := c.accountStatus(ctx); err != nil {
		return err
	}
	resp, body, err := c.do(ctx, http.MethodPut, "/api/subscription", st)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return classifyStatus(resp.StatusCode, string(body))
	}
	return nil
}

// FetchSubscription читает статус покупки; ErrNotFound, если записи нет.
func (c *Client) FetchSubscription(ctx context.Context) (model.SubscriptionStatus, error) {
	var st model.SubscriptionStatus
	if err := c.accountStatus(ctx); err != nil {
		return st, err
	}
	resp, body, err := c.do(ctx, http.MethodGet, "/api/subscription", nil)
	if err != nil {
		return st, err
	}
	if resp.StatusCode == http.StatusNotFound {
		return st, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return st, classifyStatus(resp.StatusCode, string(body))
	}
	if err := json.Unmarshal(body, &st); err != nil {
		return st, failure(ReasonOther, err.Error())
	}
	return st, nil
}
