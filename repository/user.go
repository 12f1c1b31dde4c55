package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	json "github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
	ojmodel "github.com/to404hanga/online_judge_common/model"
	"github.com/to404hanga/pkg404/logger"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
	"gorm.io/gorm"

	"github.com/to404hanga/online_judge_contest/errs"
	"github.com/to404hanga/online_judge_contest/model"
)

const userCacheKey = "contest:user:%d"

// CachedUserDirectory 从 user 表读取用户信息, 以 redis 作为读缓存
type CachedUserDirectory struct {
	db         *gorm.DB
	rdb        redis.Cmdable
	log        loggerv2.Logger
	expiration time.Duration
}

var _ UserDirectory = (*CachedUserDirectory)(nil)

// NewCachedUserDirectory rdb 为 nil 时不使用缓存
func NewCachedUserDirectory(db *gorm.DB, rdb redis.Cmdable, log loggerv2.Logger, expiration time.Duration) *CachedUserDirectory {
	return &CachedUserDirectory{
		db:         db,
		rdb:        rdb,
		log:        log,
		expiration: expiration,
	}
}

func (d *CachedUserDirectory) GetUser(ctx context.Context, uid int64) (*model.User, error) {
	key := fmt.Sprintf(userCacheKey, uid)
	if d.rdb != nil {
		data, err := d.rdb.Get(ctx, key).Bytes()
		switch {
		case err == nil:
			var user model.User
			if err = json.Unmarshal(data, &user); err == nil {
				return &user, nil
			}
			d.log.WarnContext(ctx, "GetUser failed at unmarshal cache", logger.Int64("uid", uid), logger.Error(err))
		case !errors.Is(err, redis.Nil):
			d.log.WarnContext(ctx, "GetUser failed at get cache", logger.Int64("uid", uid), logger.Error(err))
		}
	}

	var u ojmodel.User
	err := d.db.WithContext(ctx).
		Model(&ojmodel.User{}).
		Select("id", "username", "realname").
		Where("id = ?", uid).
		Where("status = ?", ojmodel.UserStatusNormal). // 被禁用的不返回
		First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &errs.UserNotFoundError{UserID: uid}
	}
	if err != nil {
		return nil, fmt.Errorf("GetUser failed at query: %w", err)
	}
	user := toUser(&u)

	if d.rdb != nil {
		data, err := json.Marshal(user)
		if err == nil {
			err = d.rdb.Set(ctx, key, data, d.expiration).Err()
		}
		if err != nil {
			d.log.WarnContext(ctx, "GetUser failed at set cache", logger.Int64("uid", uid), logger.Error(err))
		}
	}
	return user, nil
}

// toUser 用户表记录转换为用户目录信息
func toUser(u *ojmodel.User) *model.User {
	return &model.User{
		ID:       int64(u.ID),
		Uname:    u.Username,
		Nickname: u.Realname,
	}
}

// StaticUserDirectory 固定的用户表, 用于单机部署与测试
type StaticUserDirectory map[int64]*model.User

var _ UserDirectory = StaticUserDirectory(nil)

func (d StaticUserDirectory) GetUser(ctx context.Context, uid int64) (*model.User, error) {
	u, ok := d[uid]
	if !ok {
		return nil, &errs.UserNotFoundError{UserID: uid}
	}
	cp := *u
	return &cp, nil
}
