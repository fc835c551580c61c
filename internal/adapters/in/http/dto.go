package http

import (
	"encoding/json"
	"time"

	"parceltrack/internal/core/application/usecases/queries"
	"parceltrack/internal/core/domain/model/identity"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/domain/model/user"
	"parceltrack/internal/core/ports"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type resetPasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

type registerUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

type updateUserRequest struct {
	Name       *string `json:"name"`
	Password   *string `json:"password"`
	Phone      *string `json:"phone"`
	Address    *string `json:"address"`
	Role       *string `json:"role"`
	IsActive   *string `json:"isActive"`
	IsDeleted  *bool   `json:"isDeleted"`
	IsVerified *bool   `json:"isVerified"`
}

func (r updateUserRequest) patch() (user.Patch, error) {
	p := user.Patch{
		Name:       r.Name,
		Phone:      r.Phone,
		Address:    r.Address,
		IsDeleted:  r.IsDeleted,
		IsVerified: r.IsVerified,
	}
	if r.Role != nil {
		role, err := identity.ParseRole(*r.Role)
		if err != nil {
			return user.Patch{}, err
		}
		p.Role = &role
	}
	if r.IsActive != nil {
		activity, err := user.ParseActivity(*r.IsActive)
		if err != nil {
			return user.Patch{}, err
		}
		p.Activity = &activity
	}
	return p, nil
}

type createParcelRequest struct {
	Receiver        string  `json:"receiver"`
	Weight          float64 `json:"weight"`
	Fee             float64 `json:"fee"`
	PickupAddress   string  `json:"pickupAddress"`
	DeliveryAddress string  `json:"deliveryAddress"`
}

type updateParcelRequest struct {
	Status          *string  `json:"status"`
	Location        string   `json:"location"`
	Note            string   `json:"note"`
	Weight          *float64 `json:"weight"`
	Fee             *float64 `json:"fee"`
	PickupAddress   *string  `json:"pickupAddress"`
	DeliveryAddress *string  `json:"deliveryAddress"`
	IsBlocked       *bool    `json:"isBlocked"`
	IsCanceled      *bool    `json:"isCanceled"`
	IsDelivered     *bool    `json:"isDelivered"`
}

func (r updateParcelRequest) patch() (parcel.Patch, error) {
	p := parcel.Patch{
		Location:        r.Location,
		Note:            r.Note,
		Weight:          r.Weight,
		Fee:             r.Fee,
		PickupAddress:   r.PickupAddress,
		DeliveryAddress: r.DeliveryAddress,
		IsBlocked:       r.IsBlocked,
		IsCanceled:      r.IsCanceled,
		IsDelivered:     r.IsDelivered,
	}
	if r.Status != nil {
		status, err := parcel.ParseStatus(*r.Status)
		if err != nil {
			return parcel.Patch{}, err
		}
		p.Status = &status
	}
	return p, nil
}

type tokenPairResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

func newTokenPairResponse(pair ports.TokenPair) tokenPairResponse {
	return tokenPairResponse{AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken}
}

type accessTokenResponse struct {
	AccessToken string `json:"accessToken"`
}

type statusEntryResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	UpdatedBy *string   `json:"updatedBy"`
	Location  string    `json:"location,omitempty"`
	Note      string    `json:"note,omitempty"`
}

func newStatusLogResponse(log []queries.StatusEntryView) []statusEntryResponse {
	out := make([]statusEntryResponse, len(log))
	for i, e := range log {
		out[i] = statusEntryResponse{
			Status:    e.Status.String(),
			Timestamp: e.Timestamp,
			Location:  e.Location,
			Note:      e.Note,
		}
		if e.UpdatedBy != nil {
			s := e.UpdatedBy.String()
			out[i].UpdatedBy = &s
		}
	}
	return out
}

type committedParcelResponse struct {
	ID string `json:"id"`
}

type parcelResponse struct {
	ID              string                `json:"id"`
	TrackingID      string                `json:"trackingId"`
	Sender          string                `json:"sender"`
	Receiver        string                `json:"receiver"`
	Weight          float64               `json:"weight"`
	Fee             float64               `json:"fee"`
	PickupAddress   string                `json:"pickupAddress"`
	DeliveryAddress string                `json:"deliveryAddress"`
	CurrentStatus   string                `json:"currentStatus"`
	IsBlocked       bool                  `json:"isBlocked"`
	IsCanceled      bool                  `json:"isCanceled"`
	IsDelivered     bool                  `json:"isDelivered"`
	CreatedAt       time.Time             `json:"createdAt"`
	UpdatedAt       time.Time             `json:"updatedAt"`
	StatusLog       []statusEntryResponse `json:"statusLog,omitempty"`
}

func newParcelResponse(v queries.ParcelView) parcelResponse {
	r := parcelResponse{
		ID:              v.ID.String(),
		TrackingID:      v.TrackingID,
		Weight:          v.Weight,
		Fee:             v.Fee,
		PickupAddress:   v.PickupAddress,
		DeliveryAddress: v.DeliveryAddress,
		CurrentStatus:   v.CurrentStatus.String(),
		IsBlocked:       v.IsBlocked,
		IsCanceled:      v.IsCanceled,
		IsDelivered:     v.IsDelivered,
		CreatedAt:       v.CreatedAt,
		UpdatedAt:       v.UpdatedAt,
	}
	if !v.Sender.IsZero() {
		r.Sender = v.Sender.String()
	}
	if !v.Receiver.IsZero() {
		r.Receiver = v.Receiver.String()
	}
	if v.StatusLog != nil {
		r.StatusLog = newStatusLogResponse(v.StatusLog)
	}
	return r
}

type userResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone,omitempty"`
	Address    string    `json:"address,omitempty"`
	Role       string    `json:"role"`
	IsActive   string    `json:"isActive"`
	IsDeleted  bool      `json:"isDeleted"`
	IsVerified bool      `json:"isVerified"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func newUserResponse(v queries.UserView) userResponse {
	return userResponse{
		ID:         v.ID.String(),
		Name:       v.Name,
		Email:      v.Email,
		Phone:      v.Phone,
		Address:    v.Address,
		Role:       v.Role.String(),
		IsActive:   v.Activity.String(),
		IsDeleted:  v.IsDeleted,
		IsVerified: v.IsVerified,
		CreatedAt:  v.CreatedAt,
		UpdatedAt:  v.UpdatedAt,
	}
}

// project keeps id and the listed fields of each item. A nil fields slice keeps everything.
func project[T any](items []T, fields []string) ([]any, error) {
	out := make([]any, len(items))
	for i, item := range items {
		if fields == nil {
			out[i] = item
			continue
		}
		raw, err := json.Marshal(item)
		if err != nil {
			return nil, err
		}
		var full map[string]any
		if err = json.Unmarshal(raw, &full); err != nil {
			return nil, err
		}
		kept := map[string]any{"id": full["id"]}
		for _, f := range fields {
			if v, ok := full[f]; ok {
				kept[f] = v
			}
		}
		out[i] = kept
	}
	return out, nil
}
