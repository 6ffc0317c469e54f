package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/taskline/todo-api/internal/core/domain"
)

const (
	listsCollection = "todo_lists"
	itemsCollection = "todo_items"
)

// TodoRepository persists todo lists and items in separate collections so
// items can be paginated server-side.
type TodoRepository struct {
	lists *mongo.Collection
	items *mongo.Collection
}

func NewTodoRepository(db *mongo.Database) *TodoRepository {
	return &TodoRepository{
		lists: db.Collection(listsCollection),
		items: db.Collection(itemsCollection),
	}
}

type mongoList struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Title     string             `bson:"title"`
	Colour    string             `bson:"colour"`
	CreatedAt int64              `bson:"created_at"`
	UpdatedAt int64              `bson:"updated_at"`
}

type mongoItem struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	ListID    primitive.ObjectID `bson:"list_id"`
	Title     string             `bson:"title"`
	Note      string             `bson:"note,omitempty"`
	Priority  int                `bson:"priority"`
	Done      bool               `bson:"done"`
	CreatedAt int64              `bson:"created_at"`
	UpdatedAt int64              `bson:"updated_at"`
}

// EnsureIndexes creates the item list_id index used by pagination and the
// per-list fetches.
func (r *TodoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.items.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "list_id", Value: 1}, {Key: "title", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("ensure todo indexes: %w", err)
	}
	return nil
}

func (r *TodoRepository) CreateList(ctx context.Context, list *domain.TodoList) (*domain.TodoList, error) {
	doc := mongoList{
		Title:     list.Title,
		Colour:    list.Colour,
		CreatedAt: list.CreatedAt.Unix(),
		UpdatedAt: list.UpdatedAt.Unix(),
	}

	res, err := r.lists.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert todo list: %w", err)
	}

	created := *list
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *TodoRepository) UpdateList(ctx context.Context, list *domain.TodoList) error {
	oid, err := primitive.ObjectIDFromHex(list.ID)
	if err != nil {
		return domain.NewNotFound("todo list", list.ID)
	}

	res, err := r.lists.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{
			"title":      list.Title,
			"colour":     list.Colour,
			"updated_at": list.UpdatedAt.Unix(),
		}},
	)
	if err != nil {
		return fmt.Errorf("update todo list: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.NewNotFound("todo list", list.ID)
	}
	return nil
}

func (r *TodoRepository) DeleteList(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.NewNotFound("todo list", id)
	}

	res, err := r.lists.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete todo list: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.NewNotFound("todo list", id)
	}

	if _, err := r.items.DeleteMany(ctx, bson.M{"list_id": oid}); err != nil {
		return fmt.Errorf("delete todo list items: %w", err)
	}
	return nil
}

func (r *TodoRepository) FindList(ctx context.Context, id string) (*domain.TodoList, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.NewNotFound("todo list", id)
	}

	var ml mongoList
	if err := r.lists.FindOne(ctx, bson.M{"_id": oid}).Decode(&ml); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.NewNotFound("todo list", id)
		}
		return nil, fmt.Errorf("find todo list: %w", err)
	}
	return ml.toDomain(), nil
}

func (r *TodoRepository) FindListByTitle(ctx context.Context, title string) (*domain.TodoList, error) {
	var ml mongoList
	if err := r.lists.FindOne(ctx, bson.M{"title": title}).Decode(&ml); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.NewNotFound("todo list", title)
		}
		return nil, fmt.Errorf("find todo list by title: %w", err)
	}
	return ml.toDomain(), nil
}

func (r *TodoRepository) Lists(ctx context.Context) ([]domain.TodoList, error) {
	cur, err := r.lists.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "title", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find todo lists: %w", err)
	}
	defer cur.Close(ctx)

	var out []domain.TodoList
	for cur.Next(ctx) {
		var ml mongoList
		if err := cur.Decode(&ml); err != nil {
			return nil, fmt.Errorf("decode todo list: %w", err)
		}
		out = append(out, *ml.toDomain())
	}
	return out, cur.Err()
}

func (r *TodoRepository) PurgeLists(ctx context.Context) error {
	if _, err := r.items.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("purge todo items: %w", err)
	}
	if _, err := r.lists.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("purge todo lists: %w", err)
	}
	return nil
}

func (r *TodoRepository) CreateItem(ctx context.Context, item *domain.TodoItem) (*domain.TodoItem, error) {
	listOID, err := primitive.ObjectIDFromHex(item.ListID)
	if err != nil {
		return nil, domain.NewNotFound("todo list", item.ListID)
	}

	doc := mongoItem{
		ListID:    listOID,
		Title:     item.Title,
		Note:      item.Note,
		Priority:  int(item.Priority),
		Done:      item.Done,
		CreatedAt: item.CreatedAt.Unix(),
		UpdatedAt: item.UpdatedAt.Unix(),
	}

	res, err := r.items.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert todo item: %w", err)
	}

	created := *item
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *TodoRepository) UpdateItem(ctx context.Context, item *domain.TodoItem) error {
	oid, err := primitive.ObjectIDFromHex(item.ID)
	if err != nil {
		return domain.NewNotFound("todo item", item.ID)
	}

	res, err := r.items.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{
			"title":      item.Title,
			"note":       item.Note,
			"priority":   int(item.Priority),
			"done":       item.Done,
			"updated_at": item.UpdatedAt.Unix(),
		}},
	)
	if err != nil {
		return fmt.Errorf("update todo item: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.NewNotFound("todo item", item.ID)
	}
	return nil
}

func (r *TodoRepository) DeleteItem(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.NewNotFound("todo item", id)
	}

	res, err := r.items.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete todo item: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.NewNotFound("todo item", id)
	}
	return nil
}

func (r *TodoRepository) FindItem(ctx context.Context, id string) (*domain.TodoItem, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.NewNotFound("todo item", id)
	}

	var mi mongoItem
	if err := r.items.FindOne(ctx, bson.M{"_id": oid}).Decode(&mi); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.NewNotFound("todo item", id)
		}
		return nil, fmt.Errorf("find todo item: %w", err)
	}
	return mi.toDomain(), nil
}

func (r *TodoRepository) Items(ctx context.Context, listID string) ([]domain.TodoItem, error) {
	oid, err := primitive.ObjectIDFromHex(listID)
	if err != nil {
		return nil, domain.NewNotFound("todo list", listID)
	}

	cur, err := r.items.Find(ctx, bson.M{"list_id": oid},
		options.Find().SetSort(bson.D{{Key: "title", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find todo items: %w", err)
	}
	defer cur.Close(ctx)

	return decodeItems(ctx, cur)
}

func (r *TodoRepository) ItemsPage(ctx context.Context, listID string, pageNumber, pageSize int) ([]domain.TodoItem, int64, error) {
	oid, err := primitive.ObjectIDFromHex(listID)
	if err != nil {
		return nil, 0, domain.NewNotFound("todo list", listID)
	}

	filter := bson.M{"list_id": oid}

	total, err := r.items.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count todo items: %w", err)
	}

	cur, err := r.items.Find(ctx, filter, options.Find().
		SetSort(bson.D{{Key: "title", Value: 1}}).
		SetSkip(int64(pageNumber-1)*int64(pageSize)).
		SetLimit(int64(pageSize)))
	if err != nil {
		return nil, 0, fmt.Errorf("find todo items page: %w", err)
	}
	defer cur.Close(ctx)

	items, err := decodeItems(ctx, cur)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func decodeItems(ctx context.Context, cur *mongo.Cursor) ([]domain.TodoItem, error) {
	var out []domain.TodoItem
	for cur.Next(ctx) {
		var mi mongoItem
		if err := cur.Decode(&mi); err != nil {
			return nil, fmt.Errorf("decode todo item: %w", err)
		}
		out = append(out, *mi.toDomain())
	}
	return out, cur.Err()
}

func (ml *mongoList) toDomain() *domain.TodoList {
	return &domain.TodoList{
		ID:        ml.ID.Hex(),
		Title:     ml.Title,
		Colour:    ml.Colour,
		CreatedAt: unixToTime(ml.CreatedAt),
		UpdatedAt: unixToTime(ml.UpdatedAt),
	}
}

func (mi *mongoItem) toDomain() *domain.TodoItem {
	return &domain.TodoItem{
		ID:        mi.ID.Hex(),
		ListID:    mi.ListID.Hex(),
		Title:     mi.Title,
		Note:      mi.Note,
		Priority:  domain.PriorityLevel(mi.Priority),
		Done:      mi.Done,
		CreatedAt: unixToTime(mi.CreatedAt),
		UpdatedAt: unixToTime(mi.UpdatedAt),
	}
}
