// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package deployment

import (
	"encoding/json"
	"time"

	"github.com/holiman/uint256"
	"github.com/luxfi/geth/common"
	"github.com/luxfi/tge/pkg/chain"
	"github.com/luxfi/tge/pkg/constants"
	ginkgo "github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

var (
	holderA    = common.HexToAddress("0x00000000000000000000000000000000000000a1")
	holderB    = common.HexToAddress("0x00000000000000000000000000000000000000b1")
	buyerOne   = common.HexToAddress("0x00000000000000000000000000000000000000c1")
	buyerTwo   = common.HexToAddress("0x00000000000000000000000000000000000000c2")
	bystander  = common.HexToAddress("0x00000000000000000000000000000000000000d1")
	treasuryAd = common.HexToAddress("0x00000000000000000000000000000000000000bb")
)

func deployTestdata() *Deployment {
	spec, err := ParseFile("testdata/tge.yaml")
	gomega.Expect(err).Should(gomega.BeNil())
	cfg, err := spec.Resolve(time.Now())
	gomega.Expect(err).Should(gomega.BeNil())
	d, err := Deploy(nil, cfg)
	gomega.Expect(err).Should(gomega.BeNil())
	return d
}

func amount(v uint64) *uint256.Int {
	return uint256.NewInt(v)
}

var _ = ginkgo.Describe("[Token sale]", func() {
	var d *Deployment

	ginkgo.BeforeEach(func() {
		d = deployTestdata()
	})

	settleWindow := func() {
		gomega.Expect(d.PreTGE.Lock(d.Owner)).Should(gomega.Succeed())
		d.AdvanceTo(d.Sale.GraceEndsAt() + 1)
	}

	ginkgo.It("settles a non-vesting pre-TGE reservation directly", func() {
		gomega.Expect(d.PreTGE.Lock(d.Owner)).Should(gomega.Succeed())
		_, err := d.Engine.Settle(holderA)
		gomega.Expect(err).Should(gomega.MatchError(constants.ErrSaleStillOpen))

		d.AdvanceTo(d.Sale.GraceEndsAt() + 1)
		alloc, err := d.Engine.Settle(holderA)
		gomega.Expect(err).Should(gomega.BeNil())
		gomega.Expect(alloc.Vests).Should(gomega.BeFalse())
		gomega.Expect(d.Token.BalanceOf(holderA).Uint64()).Should(gomega.Equal(uint64(5_000_000 * 1000)))
		_, hasEscrow := d.Engine.Escrow(holderA)
		gomega.Expect(hasEscrow).Should(gomega.BeFalse())
		gomega.Expect(d.Token.TotalSupply().Uint64()).Should(gomega.Equal(uint64(5_000_000 * 1000)))

		_, err = d.Engine.Settle(holderA)
		gomega.Expect(constants.KindOf(err)).Should(gomega.Equal(constants.StateConflictError))
	})

	ginkgo.It("splits a vesting reservation and drains the escrow linearly", func() {
		settleWindow()
		alloc, err := d.Engine.Settle(holderB)
		gomega.Expect(err).Should(gomega.BeNil())

		const escrowGross = uint64(5_000_000 * 1000 * 2_000_000 / 10_000_000)
		gomega.Expect(alloc.VestedTokens.Uint64()).Should(gomega.Equal(escrowGross))
		gomega.Expect(d.Token.BalanceOf(holderB).Uint64()).Should(gomega.Equal(escrowGross / 10))
		escrow, ok := d.Engine.Escrow(holderB)
		gomega.Expect(ok).Should(gomega.BeTrue())
		gomega.Expect(d.Token.BalanceOf(escrow.Address()).Uint64()).Should(gomega.Equal(escrowGross - escrowGross/10))

		gomega.Expect(d.Engine.UnpauseToken(d.Owner)).Should(gomega.Succeed())
		schedule := escrow.Schedule()
		for _, fraction := range []uint64{1, 2, 3} {
			d.AdvanceTo(schedule.Start + schedule.Duration*fraction/4)
			_, err := d.Engine.Release(bystander, holderB)
			gomega.Expect(err).Should(gomega.BeNil())
			direct := d.Token.BalanceOf(holderB).Uint64()
			held := d.Token.BalanceOf(escrow.Address()).Uint64()
			gomega.Expect(direct + held).Should(gomega.Equal(escrowGross))
		}

		d.AdvanceTo(schedule.Start + schedule.Duration)
		_, err = d.Engine.Release(bystander, holderB)
		gomega.Expect(err).Should(gomega.BeNil())
		gomega.Expect(d.Token.BalanceOf(escrow.Address()).IsZero()).Should(gomega.BeTrue())
		gomega.Expect(d.Token.BalanceOf(holderB).Uint64()).Should(gomega.Equal(escrowGross))
		gomega.Expect(d.Token.BalanceOf(bystander).IsZero()).Should(gomega.BeTrue())

		_, err = d.Engine.Release(bystander, holderB)
		gomega.Expect(err).Should(gomega.MatchError(constants.ErrNothingToRelease))
	})

	ginkgo.It("enforces individual and total caps", func() {
		d.AdvanceTo(d.Sale.Config().StartTime)
		gomega.Expect(d.Sale.Contribute(buyerOne, amount(9), false)).Should(gomega.Succeed())
		gomega.Expect(d.Sale.Contribute(buyerOne, amount(1), false)).Should(gomega.Succeed())

		err := d.Sale.Contribute(buyerOne, amount(1), false)
		gomega.Expect(constants.KindOf(err)).Should(gomega.Equal(constants.CapacityError))

		err = d.Sale.Contribute(buyerTwo, amount(10), false)
		gomega.Expect(err).Should(gomega.MatchError(constants.ErrCapExceeded))
		gomega.Expect(d.Sale.WeiRaised().Uint64()).Should(gomega.Equal(uint64(10)))
		gomega.Expect(d.Bank.BalanceOf(treasuryAd).Uint64()).Should(gomega.Equal(uint64(10)))
	})

	ginkgo.It("joins both ledgers for a single contributor", func() {
		d.AdvanceTo(d.Sale.Config().StartTime)
		gomega.Expect(d.Sale.Contribute(buyerOne, amount(4), true)).Should(gomega.Succeed())
		gomega.Expect(d.PreTGE.BulkReserve(d.Owner, []common.Address{buyerOne}, []*uint256.Int{amount(6)}, []bool{false})).Should(gomega.Succeed())
		settleWindow()

		alloc, err := d.Engine.Settle(buyerOne)
		gomega.Expect(err).Should(gomega.BeNil())
		gomega.Expect(alloc.Vests).Should(gomega.BeTrue())
		gomega.Expect(alloc.TotalWei.Uint64()).Should(gomega.Equal(uint64(10)))
		gomega.Expect(alloc.VestedTokens.Uint64()).Should(gomega.Equal(uint64(2000)))
	})

	ginkgo.It("survives a state roundtrip", func() {
		settleWindow()
		_, err := d.Engine.Settle(holderB)
		gomega.Expect(err).Should(gomega.BeNil())

		raw, err := json.Marshal(d.Snapshot())
		gomega.Expect(err).Should(gomega.BeNil())
		var s State
		gomega.Expect(json.Unmarshal(raw, &s)).Should(gomega.Succeed())
		restored, err := Restore(nil, s)
		gomega.Expect(err).Should(gomega.BeNil())

		gomega.Expect(restored.BlockTime()).Should(gomega.Equal(d.BlockTime()))
		gomega.Expect(restored.Token.TotalSupply()).Should(gomega.Equal(d.Token.TotalSupply()))
		_, err = restored.Engine.Settle(holderB)
		gomega.Expect(err).Should(gomega.MatchError(constants.ErrAlreadySettled))
		_, err = restored.Engine.Settle(holderA)
		gomega.Expect(err).Should(gomega.BeNil())
		gomega.Expect(restored.Engine.Allocations()).Should(gomega.Equal([]common.Address{holderB, holderA}))
		gomega.Expect(chain.Timestamp(restored.Now())).Should(gomega.Equal(restored.BlockTime()))
	})
})
