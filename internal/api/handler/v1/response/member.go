package response

import "github.com/vietanh2810/gift-api/internal/domain"

type Token struct {
	Token string `json:"token"`
}

type Member struct {
	ID          uint   `json:"id"`
	Email       string `json:"email"`
	Point       int    `json:"point"`
	KakaoLinked bool   `json:"kakao_linked"`
}

func NewMember(m domain.Member) Member {
	_, linked := m.NotificationTarget()

	return Member{
		ID:          m.ID,
		Email:       m.Email,
		Point:       m.Point,
		KakaoLinked: linked,
	}
}
