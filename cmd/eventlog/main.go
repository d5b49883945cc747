package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"github.com/vncsrmro/audiovisual-sub001/internal/dto"
	"github.com/vncsrmro/audiovisual-sub001/internal/repository"
	"github.com/vncsrmro/audiovisual-sub001/pkg/config"
)

func main() {
	cfg := config.LoadConfig()

	repo, err := repository.NewEventRepository(cfg.Database.URL)
	if err != nil {
		log.Fatal("Erro fatal no banco:", err)
	}
	defer repo.Close(context.Background())

	nc, err := nats.Connect(cfg.Nats.URL)
	if err != nil {
		log.Fatal("Erro conectando ao NATS:", err)
	}
	defer nc.Close()

	js, err := nc.JetStream()
	if err != nil {
		log.Fatal("Erro JetStream:", err)
	}

	// Garante que o stream EVENTS exista mesmo se o dashboard ainda não subiu
	_, err = js.AddStream(&nats.StreamConfig{
		Name:     dto.StreamEvents,
		Subjects: []string{dto.SubjectStatusEvents},
		Storage:  nats.FileStorage,
	})
	if err != nil {
		log.Printf("Stream %s: %v (ok se já existe)", dto.StreamEvents, err)
	}

	fmt.Println("Event Log Service iniciado. Aguardando mudanças de status...")

	sub, err := js.Subscribe(dto.SubjectStatusEvents, func(msg *nats.Msg) {
		var ev dto.StatusEvent
		if err := json.Unmarshal(msg.Data, &ev); err != nil {
			log.Printf("Erro decodificando evento: %v", err)
			msg.Ack() // payload podre nunca vai melhorar; descarta
			return
		}

		id, err := uuid.Parse(ev.ID)
		if err != nil {
			id = uuid.New()
		}

		_, err = repo.Save(context.Background(), repository.StatusEvent{
			ID:         id,
			TaskID:     ev.TaskID,
			TaskName:   ev.TaskName,
			FromStatus: ev.FromStatus,
			ToStatus:   ev.ToStatus,
			Editor:     ev.Editor,
			OccurredAt: ev.OccurredAt,
		})
		if err != nil {
			log.Printf("❌ erro salvando evento da task %s: %v", ev.TaskID, err)
			// Devolve para a fila: o banco pode voltar
			msg.Nak()
			return
		}

		fmt.Printf("📝 task %s: %s → %s (%s)\n", ev.TaskID, ev.FromStatus, ev.ToStatus, ev.Editor)
		msg.Ack()
	}, nats.Durable("eventlog-consumer"), nats.DeliverAll(), nats.AckWait(30*time.Second))

	if err != nil {
		log.Fatal("Erro ao criar subscriber:", err)
	}
	defer sub.Unsubscribe()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	fmt.Println("\nSinal recebido. Encerrando Event Log Service...")
}
