package models

// MovieActor links movies and actors many-to-many and carries the character
// the actor plays in that movie.
type MovieActor struct {
	MovieID       uint   `json:"movieID" gorm:"primaryKey;autoIncrement:false"`
	ActorID       uint   `json:"actorID" gorm:"primaryKey;autoIncrement:false"`
	CharacterName string `json:"characterName" gorm:"size:100"`

	Movie Movie `json:"-" gorm:"foreignKey:MovieID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Actor Actor `json:"actor" gorm:"foreignKey:ActorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
