package store

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/meikit/meikit/core"
)

// UserAdapter 把 core.Store 适配为用户侧的领域接口：交互历史与声明画像。
// key 约定：
//
//	交互历史：{KeyPrefix}:history:{userID} → JSON []core.Interaction
//	声明画像：{KeyPrefix}:profile:{userID} → JSON core.UserProfile
type UserAdapter struct {
	store core.Store

	// KeyPrefix 是存储 key 的前缀，默认 "user"
	KeyPrefix string
}

func NewUserAdapter(s core.Store, keyPrefix string) *UserAdapter {
	if keyPrefix == "" {
		keyPrefix = "user"
	}
	return &UserAdapter{store: s, KeyPrefix: keyPrefix}
}

// GetHistory 返回按时间升序的交互历史；无记录返回空切片而非错误（冷启动语义）。
func (a *UserAdapter) GetHistory(ctx context.Context, userID string) ([]core.Interaction, error) {
	key := a.KeyPrefix + ":history:" + userID
	data, err := a.store.Get(ctx, key)
	if err != nil {
		if core.IsStoreNotFound(err) {
			return []core.Interaction{}, nil
		}
		return nil, err
	}

	var history []core.Interaction
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, err
	}
	sort.SliceStable(history, func(i, j int) bool {
		return history[i].Timestamp < history[j].Timestamp
	})
	return history, nil
}

// GetProfile 返回用户声明画像；未登记返回 (nil, nil)。
func (a *UserAdapter) GetProfile(ctx context.Context, userID string) (*core.UserProfile, error) {
	key := a.KeyPrefix + ":profile:" + userID
	data, err := a.store.Get(ctx, key)
	if err != nil {
		if core.IsStoreNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	var profile core.UserProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// AppendInteraction 追加一条交互记录（数据准备/测试用；在线写路径在外部链路）。
func (a *UserAdapter) AppendInteraction(ctx context.Context, userID string, inter core.Interaction) error {
	history, err := a.GetHistory(ctx, userID)
	if err != nil {
		return err
	}
	history = append(history, inter)
	data, err := json.Marshal(history)
	if err != nil {
		return err
	}
	return a.store.Set(ctx, a.KeyPrefix+":history:"+userID, data)
}

// PutProfile 写入用户声明画像（数据准备/测试用）。
func (a *UserAdapter) PutProfile(ctx context.Context, profile *core.UserProfile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return err
	}
	return a.store.Set(ctx, a.KeyPrefix+":profile:"+profile.UserID, data)
}

var _ core.InteractionStore = (*UserAdapter)(nil)
var _ core.ProfileStore = (*UserAdapter)(nil)
