package server

import (
	"paintingstore/internal/handler"
	"paintingstore/internal/infra/cache"
	"paintingstore/internal/infra/repository"
	"paintingstore/internal/infra/token"
	"paintingstore/internal/usecase"
	auth "paintingstore/internal/usecase/auth_usecase"
	"paintingstore/internal/validator"
)

type handlers struct {
	auth       *handler.AuthHandler
	painting   *handler.PaintingHandler
	order      *handler.OrderHandler
	adminOrder *handler.AdminOrderHandler
	adminUser  *handler.AdminUserHandler
}

// repository → usecase → handler の順に組み立てる
func build(d Deps) handlers {
	//Repository（GORM実装）生成
	userRepo := repository.NewUserGormRepository(d.DB)
	paintingRepo := repository.NewPaintingGormRepository(d.DB)
	orderRepo := repository.NewOrderGormRepository(d.DB)
	auditRepo := repository.NewAuditLogGormRepository(d.DB)
	txm := repository.NewTxManagerGorm(d.DB)

	catalogCache := d.Cache
	if catalogCache == nil {
		catalogCache = cache.NoopCatalogCache{}
	}

	//usecaseに渡す部品
	cost := d.BcryptCost
	if cost == 0 {
		cost = 12
	}
	hasher := auth.NewBcryptPasswordHasher(cost)
	verifier := auth.NewBcryptPasswordVerifier()
	issuer := token.NewJWTIssuer(d.Config.JWTSecret, d.Config.JWTTTL)
	v := validator.NewAuthValidator(userRepo)
	clock := auth.SystemClock{}

	//Usecase生成
	registerUC := auth.NewRegisterUserUsecase(userRepo, v, hasher, issuer, clock, d.Config.AdminCode)
	loginUC := auth.NewLoginUsecase(userRepo, v, verifier, issuer, clock)
	paintingUC := usecase.NewPaintingUsecase(paintingRepo, auditRepo, catalogCache, d.Log)
	orderUC := usecase.NewOrderUsecase(txm, orderRepo, d.Log)
	adminOrderUC := usecase.NewAdminOrderUsecase(txm, orderRepo, d.Log)
	adminUserUC := usecase.NewAdminUserUsecase(userRepo, orderRepo)
	auditUC := usecase.NewAuditLogUsecase(auditRepo)

	//Handler生成
	return handlers{
		auth:       handler.NewAuthHandler(registerUC, loginUC),
		painting:   handler.NewPaintingHandler(paintingUC),
		order:      handler.NewOrderHandler(orderUC, adminOrderUC),
		adminOrder: handler.NewAdminOrderHandler(adminOrderUC),
		adminUser:  handler.NewAdminUserHandler(adminUserUC, auditUC),
	}
}
