package controller

import (
	"sync"

	"github.com/markusressel/asus2go/internal/attr"
	"github.com/markusressel/asus2go/internal/capability"
)

const (
	MinChargeLimit = 20
	MaxChargeLimit = 100
)

type ChargeController interface {
	ChargeLimit() (uint8, error)
	SetChargeLimit(limit uint8) error
}

type chargeController struct {
	mu sync.Mutex

	supported bool
	threshold attr.Attribute
	notifier  *Notifier
}

func NewChargeController(supported capability.SupportedFunctions, threshold attr.Attribute, notifier *Notifier) ChargeController {
	return &chargeController{
		supported: supported.Charge.ChargeLevelSet,
		threshold: threshold,
		notifier:  notifier,
	}
}

func (c *chargeController) ChargeLimit() (uint8, error) {
	if err := requireCapability(c.supported, "charge limit"); err != nil {
		return 0, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	value, err := attr.ReadU8(c.threshold)
	if err != nil {
		return 0, deviceError(c.threshold, err)
	}
	return value, nil
}

func (c *chargeController) SetChargeLimit(limit uint8) error {
	if err := requireCapability(c.supported, "charge limit"); err != nil {
		return err
	}
	if limit < MinChargeLimit || limit > MaxChargeLimit {
		return validationError("limit", "%d must be in range %d-%d", limit, MinChargeLimit, MaxChargeLimit)
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := attr.WriteU8(c.threshold, limit); err != nil {
		return deviceError(c.threshold, err)
	}
	c.notifier.Publish(NotifyCharge, limit)
	return nil
}
