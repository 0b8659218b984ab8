package usecase

import (
	"context"
	"errors"
	"strings"

	"littlelemon/internal/domain/model"
	repo "littlelemon/internal/repository"
)

// GroupUsecase は Manager / Delivery Crew のメンバー管理。
type GroupUsecase struct {
	users repo.UserRepository
}

func NewGroupUsecase(users repo.UserRepository) *GroupUsecase {
	return &GroupUsecase{users: users}
}

type GroupMemberOutput struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type MessageOutput struct {
	Message string `json:"message"`
}

// 管理できるグループか
func isManagedGroup(group string) bool {
	return group == model.GroupManager || group == model.GroupDeliveryCrew
}

func (u *GroupUsecase) ListMembers(ctx context.Context, group string) ([]GroupMemberOutput, error) {
	if !isManagedGroup(group) {
		return nil, errNotFound("not found")
	}

	users, err := u.users.ListByGroup(ctx, group)
	if err != nil {
		return nil, errDB(err)
	}
	out := make([]GroupMemberOutput, 0, len(users))
	for _, usr := range users {
		out = append(out, GroupMemberOutput{ID: usr.ID, Username: usr.Username, Email: usr.Email})
	}
	return out, nil
}

// AddMember は username のユーザーをグループに追加する。
func (u *GroupUsecase) AddMember(ctx context.Context, group string, username string) (MessageOutput, error) {
	user, err := u.findMember(ctx, group, username)
	if err != nil {
		return MessageOutput{}, err
	}
	if err := u.users.AddToGroup(ctx, user.ID, group); err != nil {
		return MessageOutput{}, errDB(err)
	}
	return MessageOutput{Message: "user added to " + group}, nil
}

// RemoveMember は username のユーザーをグループから外す。
func (u *GroupUsecase) RemoveMember(ctx context.Context, group string, username string) (MessageOutput, error) {
	user, err := u.findMember(ctx, group, username)
	if err != nil {
		return MessageOutput{}, err
	}
	if err := u.users.RemoveFromGroup(ctx, user.ID, group); err != nil {
		return MessageOutput{}, errDB(err)
	}
	return MessageOutput{Message: "user removed from " + group}, nil
}

func (u *GroupUsecase) findMember(ctx context.Context, group string, username string) (*model.User, error) {
	if !isManagedGroup(group) {
		return nil, errNotFound("not found")
	}
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, errValidation("username is required")
	}

	user, err := u.users.FindByUsername(ctx, username)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, errNotFound("user not found")
	}
	if err != nil {
		return nil, errDB(err)
	}
	return user, nil
}
