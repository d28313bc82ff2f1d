package trackpass

import (
	"sort"
	"strings"
	"trackpass/cmd/internal/domain/entity"
)

// Every applyX lays the fields present in f over base. Decoding a fresh
// entity is applyX(f, zero); reconciling an optimistic edit with the
// backend's answer is applyX(f, current).

var (
	aliasCityID         = []string{"idCidade", "id_cidade", "cidade.idCidade", "cidade.id"}
	aliasPointID        = []string{"idPonto", "id_ponto", "ponto.idPonto", "ponto.id"}
	aliasRouteID        = []string{"idRota", "id_rota", "rota.idRota", "rota.id"}
	aliasCollaboratorID = []string{"idColaborador", "id_colaborador", "colaborador.idColaborador", "colaborador.id"}
	aliasDriverID       = []string{"idMotorista", "id_motorista", "motorista.idMotorista", "motorista.id"}
	aliasVehicleID      = []string{"idVeiculo", "id_veiculo", "veiculo.idVeiculo", "veiculo.id"}
	aliasTripID         = []string{"idViagem", "id_viagem", "viagem.idViagem", "viagem.id"}
	aliasGateID         = []string{"idPortaria", "id_portaria", "portaria.idPortaria", "portaria.id"}
	aliasDeparture      = []string{"horarioPartida", "horario_partida", "partida", "horaSaida"}
	aliasArrival        = []string{"horarioChegada", "horario_chegada", "chegada", "horaChegada"}
	aliasActive         = []string{"ativo", "ativa", "status", "active"}
	aliasName           = []string{"nome", "name"}
	aliasOrder          = []string{"ordem", "ordemPonto", "ordem_ponto", "ponto.ordem"}
)

// own returns the aliases of an entity's own id: its specific names first, plain "id" last.
func own(specific ...string) []string {
	out := make([]string, 0, len(specific)+1)
	for _, s := range specific {
		if !strings.Contains(s, ".") {
			out = append(out, s)
		}
	}
	return append(out, "id")
}

func applyCity(f fields, c entity.City) entity.City {
	f.setInt64(&c.ID, own(aliasCityID...)...)
	f.setString(&c.Name, aliasName...)
	f.setUpper(&c.UF, "uf", "estado", "sigla")
	return c
}

func decodeCity(f fields) entity.City {
	return applyCity(f, entity.City{})
}

func applyPoint(f fields, p entity.Point) entity.Point {
	f.setInt64(&p.ID, own(aliasPointID...)...)
	f.setString(&p.Name, aliasName...)
	f.setString(&p.Address, "endereco", "logradouro", "rua")
	f.setFloat(&p.Latitude, "latitude", "lat")
	f.setFloat(&p.Longitude, "longitude", "lng", "lon")
	f.setInt64(&p.CityID, aliasCityID...)
	f.setInt(&p.Order, aliasOrder...)
	return p
}

func decodePoint(f fields) entity.Point {
	return applyPoint(f, entity.Point{})
}

// decodeTrajectory returns the points of a route sorted by their order.
// Points without an explicit order take their position in the payload.
func decodeTrajectory(items []fields) []entity.Point {
	points := make([]entity.Point, 0, len(items))
	for i, item := range items {
		p := decodePoint(item)
		if p.Order == 0 {
			p.Order = i + 1
		}
		points = append(points, p)
	}
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Order < points[j].Order
	})
	return points
}

func applyRoute(f fields, r entity.Route) entity.Route {
	f.setInt64(&r.ID, own(aliasRouteID...)...)
	f.setString(&r.Name, aliasName...)
	f.setInt64(&r.CityID, aliasCityID...)
	if v, ok := f.pick("periodo", "turno"); ok {
		r.Period = entity.Period(strings.ToUpper(strings.TrimSpace(v.String())))
	}
	f.setInt(&r.Capacity, "capacidade", "capacidadeMaxima", "lotacao")
	f.setString(&r.Departure, aliasDeparture...)
	f.setString(&r.Arrival, aliasArrival...)
	f.setActive(&r.Active, aliasActive...)

	if items, ok := f.objects("pontos", "trajeto"); ok {
		trajectory := decodeTrajectory(items)
		r.Points = make([]entity.RoutePoint, len(trajectory))
		for i, p := range trajectory {
			r.Points[i] = entity.RoutePoint{PointID: p.ID, Order: p.Order}
		}
	}
	return r
}

func decodeRoute(f fields) entity.Route {
	return applyRoute(f, entity.Route{})
}

func applyCollaborator(f fields, c entity.Collaborator) entity.Collaborator {
	f.setInt64(&c.ID, own(aliasCollaboratorID...)...)
	f.setString(&c.Name, aliasName...)
	f.setString(&c.Matricula, "matricula", "registro")
	f.setString(&c.Role, "cargo", "funcao", "role")
	f.setActive(&c.Active, aliasActive...)
	return c
}

func decodeCollaborator(f fields) entity.Collaborator {
	return applyCollaborator(f, entity.Collaborator{})
}

// decodeAssignment accepts both a nested {"colaborador": {...}, "ponto": {...}}
// shape and a flat collaborator row carrying the point id next to it.
func decodeAssignment(routeID int64, f fields) entity.RouteAssignment {
	a := entity.RouteAssignment{RouteID: routeID}

	if nested, ok := f.object("colaborador"); ok {
		a.Collaborator = decodeCollaborator(nested)
	} else {
		a.Collaborator = decodeCollaborator(f)
	}

	f.setInt64(&a.PointID, aliasPointID...)
	f.setInt(&a.PointOrder, aliasOrder...)
	f.setBool(&a.Leader, "lider", "isLider", "leader")
	return a
}

func applyVisitor(f fields, v entity.Visitor) entity.Visitor {
	f.setInt64(&v.ID, "idVisitante", "id_visitante", "id")
	f.setString(&v.Name, "nomeCompleto", "nome_completo", "nome")
	if t, ok := f.pick("tipoDocumento", "tipo_documento"); ok {
		v.DocumentType = entity.DocumentType(strings.ToUpper(strings.TrimSpace(t.String())))
	}
	f.setString(&v.Document, "numeroDocumento", "numero_documento", "documento")
	f.setString(&v.Phone, "telefone", "celular")
	f.setString(&v.BirthDate, "dataNascimento", "data_nascimento")
	f.setInt64(&v.HostID, aliasCollaboratorID...)
	f.setString(&v.Reason, "motivoVisita", "motivo_visita", "motivo")
	f.setActive(&v.Active, aliasActive...)
	return v
}

func decodeVisitor(f fields) entity.Visitor {
	return applyVisitor(f, entity.Visitor{})
}

func applyTrip(f fields, t entity.Trip) entity.Trip {
	f.setInt64(&t.ID, own(aliasTripID...)...)
	f.setInt64(&t.RouteID, aliasRouteID...)
	f.setInt64(&t.DriverID, aliasDriverID...)
	f.setInt64(&t.VehicleID, aliasVehicleID...)
	f.setString(&t.Date, "data", "dataViagem", "data_viagem")
	f.setString(&t.Departure, aliasDeparture...)
	f.setString(&t.Arrival, aliasArrival...)
	if v, ok := f.pick("sentido", "direcao"); ok {
		t.Direction = entity.Direction(strings.ToUpper(strings.TrimSpace(v.String())))
	}
	f.setActive(&t.Active, aliasActive...)
	return t
}

func decodeTrip(f fields) entity.Trip {
	return applyTrip(f, entity.Trip{})
}

func decodeBoarding(f fields) entity.Boarding {
	var b entity.Boarding
	f.setInt64(&b.ID, "idEmbarque", "id_embarque", "id")
	f.setInt64(&b.TripID, aliasTripID...)
	f.setInt64(&b.CollaboratorID, aliasCollaboratorID...)
	f.setTime(&b.BoardedAt, "dataHora", "dataHoraEmbarque", "data_embarque", "embarcadoEm")
	f.setString(&b.CollaboratorName, "nomeColaborador", "colaborador.nome")
	f.setString(&b.CollaboratorRole, "cargoColaborador", "colaborador.cargo")
	return b
}

func decodeVehicle(f fields) entity.Vehicle {
	var v entity.Vehicle
	f.setInt64(&v.ID, own(aliasVehicleID...)...)
	f.setUpper(&v.Plate, "placa")
	f.setString(&v.Model, "modelo")
	f.setInt(&v.Capacity, "capacidade", "lotacao")
	f.setActive(&v.Active, aliasActive...)
	return v
}

func decodeDriver(f fields) entity.Driver {
	var d entity.Driver
	f.setInt64(&d.ID, own(aliasDriverID...)...)
	f.setString(&d.Name, aliasName...)
	f.setString(&d.License, "cnh", "numeroCnh")
	f.setString(&d.Phone, "telefone", "celular")
	f.setActive(&d.Active, aliasActive...)
	return d
}

func applyAccess(f fields, a entity.Access) entity.Access {
	f.setInt64(&a.ID, "idAcesso", "id_acesso", "id")
	if v, ok := f.pick("tipoPessoa", "tipo_pessoa", "tipo"); ok {
		a.PersonType = entity.PersonType(strings.ToUpper(strings.TrimSpace(v.String())))
	}
	f.setInt64(&a.PersonID, "idPessoa", "id_pessoa", "idColaborador", "idVisitante")
	f.setString(&a.PersonName, "nomePessoa", "nome", "colaborador.nome", "visitante.nomeCompleto")
	f.setInt64(&a.GateID, aliasGateID...)
	f.setTime(&a.EnteredAt, "dataHoraEntrada", "data_hora_entrada", "entrada")
	f.setTimePtr(&a.ExitedAt, "dataHoraSaida", "data_hora_saida", "saida")

	if items, ok := f.objects("ocupantes", "acompanhantes"); ok {
		a.Occupants = make([]entity.Occupant, 0, len(items))
		for _, item := range items {
			var o entity.Occupant
			item.setString(&o.Name, "nome", "nomeCompleto")
			item.setString(&o.Document, "documento", "numeroDocumento")
			a.Occupants = append(a.Occupants, o)
		}
	}
	return a
}

func decodeAccess(f fields) entity.Access {
	return applyAccess(f, entity.Access{})
}

func decodeImpediment(f fields) entity.Impediment {
	var i entity.Impediment
	f.setInt64(&i.ID, "idImpedimento", "id_impedimento", "id")
	f.setString(&i.Reason, "motivo", "codigoMotivo")
	if v, ok := f.pick("gravidade", "severidade"); ok {
		i.Severity = entity.Severity(strings.ToUpper(strings.TrimSpace(v.String())))
	}
	f.setString(&i.Description, "descricao")
	f.setInt64(&i.RouteID, aliasRouteID...)
	f.setInt64(&i.DriverID, aliasDriverID...)
	f.setTime(&i.OccurredAt, "dataHora", "dataHoraOcorrencia", "data_ocorrencia")
	f.setActive(&i.Active, aliasActive...)

	if items, ok := f.objects("colaboradores", "colaboradoresAfetados"); ok {
		i.Affected = make([]entity.Collaborator, 0, len(items))
		for _, item := range items {
			i.Affected = append(i.Affected, decodeCollaborator(item))
		}
	}
	return i
}
