package main

import (
	"context"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/common/utils"

	"marketing-automation-service/internal/marketing-manager/agents"
	"marketing-automation-service/internal/marketing-manager/api"
	"marketing-automation-service/internal/marketing-manager/config"
	taskDB "marketing-automation-service/internal/marketing-manager/db"
	mmKafka "marketing-automation-service/internal/marketing-manager/kafka"
	"marketing-automation-service/internal/marketing-manager/scheduler"
	gormdb "marketing-automation-service/pkg/db"
)

func main() {
	stdlog.Println("Marketing Automation Service starting...")

	cfg := config.Load()

	hlog.SetOutput(os.Stdout)
	hlog.SetLevel(hlog.LevelInfo)

	gormDB, err := gormdb.NewGormDB(cfg.DBType, cfg.DBDSN)
	if err != nil {
		stdlog.Fatalf("Failed to initialize database: %v", err)
	}
	if err := gormdb.AutoMigrate(gormDB, &taskDB.TaskRun{}); err != nil {
		stdlog.Fatalf("Failed to migrate database: %v", err)
	}
	stdlog.Println("Database initialized and migrated.")

	// Agent team.
	text := agents.NewTextClient(cfg.AnthropicAPIKey)
	images := agents.NewImageClient(cfg.OpenAIAPIKey)
	marketing := agents.NewMarketingAgent(text)
	social := agents.NewSocialAgent(text)
	artist := agents.NewGraphicArtist(images)
	web := agents.NewWebAgent()
	lead := agents.NewProjectLead(text, marketing, social, artist, web)

	schedOpts := []scheduler.Option{scheduler.WithHistoryDB(gormDB)}
	var publisher *mmKafka.EventPublisher
	if cfg.KafkaEnabled() {
		publisher = mmKafka.NewEventPublisher(mmKafka.NewWriter(cfg.KafkaBrokers, cfg.KafkaTaskTopic))
		schedOpts = append(schedOpts, scheduler.WithEventPublisher(publisher))
	}

	sched, err := scheduler.New(
		scheduler.NewStore(cfg.SnapshotPath),
		scheduler.Collaborators{
			Content:   lead,
			Social:    social,
			Images:    artist,
			Analytics: lead,
			Text:      text,
			Mail:      agents.LogMailer{},
		},
		schedOpts...,
	)
	if err != nil {
		stdlog.Fatalf("Failed to create scheduler: %v", err)
	}
	if err := sched.Start(); err != nil {
		stdlog.Fatalf("Failed to start scheduler: %v", err)
	}

	h := server.Default(server.WithHostPorts(cfg.ServerAddr), server.WithExitWaitTime(5*time.Second))

	scheduleHandler := api.NewScheduleHandler(sched, gormDB)
	agentHandler := api.NewAgentHandler(lead, social, artist)

	scheduleGroup := h.Group("/schedule")
	{
		scheduleGroup.POST("/task", scheduleHandler.CreateScheduledTask)
		scheduleGroup.GET("/tasks", scheduleHandler.GetScheduledTasks)
		scheduleGroup.GET("/tasks/:id", scheduleHandler.GetScheduledTaskByID)
		scheduleGroup.POST("/tasks/:id/pause", scheduleHandler.PauseScheduledTask)
		scheduleGroup.POST("/tasks/:id/resume", scheduleHandler.ResumeScheduledTask)
		scheduleGroup.DELETE("/tasks/:id", scheduleHandler.DeleteScheduledTask)
		scheduleGroup.GET("/tasks/:id/runs", scheduleHandler.GetTaskRuns)
	}

	h.POST("/content/generate", agentHandler.GenerateContent)
	h.POST("/image/generate", agentHandler.GenerateImage)
	h.POST("/social/post", agentHandler.PostToSocial)
	h.GET("/analytics/performance", agentHandler.GetPerformanceAnalytics)
	h.GET("/agents/status", agentHandler.GetAgentsStatus)
	h.POST("/campaign/create", agentHandler.CreateCampaign)

	h.GET("/api/status", func(c context.Context, ctxReq *app.RequestContext) {
		ctxReq.JSON(http.StatusOK, utils.H{
			"service":         "The Dark Road Marketing Automation",
			"status":          "running",
			"scheduled_tasks": len(sched.List()),
			"integrations":    cfg.IntegrationStatus(),
			"timestamp":       time.Now().Format(time.RFC3339),
		})
	})
	h.GET("/ping", func(c context.Context, ctxReq *app.RequestContext) {
		ctxReq.JSON(http.StatusOK, utils.H{"message": "pong"})
	})

	go func() {
		signals := make(chan os.Signal, 1)
		signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
		sig := <-signals
		hlog.Infof("Received signal: %s. Initiating graceful shutdown...", sig)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := h.Shutdown(shutdownCtx); err != nil {
			hlog.Errorf("Hertz server shutdown error: %v", err)
		} else {
			hlog.Info("Hertz server gracefully stopped.")
		}

		if err := sched.Stop(); err != nil {
			hlog.Errorf("Scheduler stop error: %v", err)
		}

		if publisher != nil {
			if err := publisher.Close(); err != nil {
				hlog.Errorf("Kafka producer close error: %v", err)
			}
		}
		hlog.Info("Marketing Automation Service gracefully shut down.")
	}()

	hlog.Infof("Marketing Automation Service listening on %s", cfg.ServerAddr)
	h.Spin()

	stdlog.Println("Marketing Automation Service has been shut down.")
}
