package api

import (
	"github.com/go-chi/chi"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/babylonchain/restaking-ledger-service/docs"
)

func (a *Server) SetupRoutes(r *chi.Mux) {
	handlers := a.handlers
	r.Get("/healthcheck", registerHandler(handlers.HealthCheck))

	r.Route("/v1", func(r chi.Router) {
		r.Post("/accounts", registerHandler(handlers.RegisterAccount))
		r.Get("/accounts/{account_id}/pending-withdrawals", registerHandler(handlers.ListPendingWithdrawals))

		r.Post("/staking/stake", registerHandler(handlers.Stake))
		r.Post("/staking/increase", registerHandler(handlers.IncreaseStake))
		r.Post("/staking/decrease", registerHandler(handlers.DecreaseStake))
		r.Post("/staking/unstake", registerHandler(handlers.Unstake))
		r.Post("/staking/ping", registerHandler(handlers.Ping))
		r.Post("/staking/withdraw", registerHandler(handlers.Withdraw))

		r.Get("/pools", registerHandler(handlers.ListStakingPools))
		r.Get("/pools/{pool_id}", registerHandler(handlers.GetStakingPool))
		r.Post("/pools/{pool_id}/unstake-batches", registerHandler(handlers.SubmitUnstakeBatch))
		r.Post("/pools/{pool_id}/unstake-batches/{batch_id}/withdraw", registerHandler(handlers.WithdrawUnstakeBatch))

		r.Post("/restaking/bond", registerHandler(handlers.Bond))
		r.Post("/restaking/change-key", registerHandler(handlers.ChangeKey))
		r.Post("/restaking/unbond", registerHandler(handlers.Unbond))

		r.Get("/stakers/{staker_id}", registerHandler(handlers.GetStaker))
		r.Get("/stakers/{staker_id}/staked-balance", registerHandler(handlers.GetStakerStakedBalance))
		r.Get("/stakers/{staker_id}/consumer-chains", registerHandler(handlers.GetStakerBondingChains))

		r.Get("/consumer-chains", registerHandler(handlers.ListConsumerChains))
		r.Post("/consumer-chains", registerHandler(handlers.RegisterConsumerChain))
		r.Get("/consumer-chains/{chain_id}", registerHandler(handlers.GetConsumerChain))
		r.Patch("/consumer-chains/{chain_id}", registerHandler(handlers.UpdateConsumerChain))
		r.Post("/consumer-chains/{chain_id}/deregister", registerHandler(handlers.DeregisterConsumerChain))
		r.Post("/consumer-chains/{chain_id}/blackout", registerHandler(handlers.Blackout))
		r.Get("/consumer-chains/{chain_id}/validator-set", registerHandler(handlers.GetValidatorSet))
		r.Post("/consumer-chains/{chain_id}/slashes", registerHandler(handlers.SlashRequest))
		r.Post("/consumer-chains/{chain_id}/slashes/{slash_id}/resolve", registerHandler(handlers.ResolveSlash))

		r.Get("/slashes/{slash_id}", registerHandler(handlers.GetSlash))
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)
}
